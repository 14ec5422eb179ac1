package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

func TestPipelineSettings_Validate(t *testing.T) {
	gt.NoError(t, model.DefaultPipelineSettings().Validate())

	s := model.DefaultPipelineSettings()
	s.Concurrency = 0
	gt.Value(t, s.Validate()).NotNil()

	s = model.DefaultPipelineSettings()
	s.StreamTimeout = 0
	gt.Value(t, s.Validate()).NotNil()
}
