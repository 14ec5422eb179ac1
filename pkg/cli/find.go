package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFind() *cli.Command {
	var pipelineCfg pipelineConfig
	var topics []string
	var text string
	var limit int

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "topic",
			Aliases:     []string{"t"},
			Usage:       "Topic of expertise, repeatable",
			Destination: &topics,
		},
		&cli.StringFlag{
			Name:        "text",
			Usage:       "Free-text description of your expertise",
			Destination: &text,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of articles (configured default when 0)",
			Destination: &limit,
		},
	}
	flags = append(flags, pipelineCfg.Flags()...)

	return &cli.Command{
		Name:    "find",
		Aliases: []string{"f"},
		Usage:   "Find stub articles for the given expertise and print them",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := pipelineCfg.Configure(ctx)
			if err != nil {
				return err
			}

			rec, err := uc.Recommend.Recommend(ctx, usecase.RecommendInput{
				Topics: topics,
				Text:   text,
				Limit:  limit,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to find stub articles")
			}

			printRecommendation(c.Root().Writer, rec)
			return nil
		},
	}
}

func printRecommendation(w io.Writer, rec *usecase.Recommendation) {
	title := color.New(color.Bold)
	score := color.New(color.FgGreen)
	link := color.New(color.FgCyan)
	note := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	faint.Fprintln(w, rec.Message)
	if len(rec.Articles) == 0 {
		return
	}
	fmt.Fprintln(w)

	for i, a := range rec.Articles {
		title.Fprintf(w, "%d. %s", i+1, a.Title)
		score.Fprintf(w, " (%.3f)\n", a.RelevanceScore)
		link.Fprintf(w, "   %s\n", a.ViewURL)
		if len(a.Categories) > 0 {
			faint.Fprintf(w, "   %s\n", strings.Join(a.Categories, ", "))
		}
		for _, m := range a.MissingInfo {
			note.Fprintf(w, "   - %s\n", m)
		}
		fmt.Fprintln(w)
	}
}
