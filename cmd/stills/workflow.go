package main

import (
	"context"
	"path/filepath"

	"github.com/bcc-code/bcc-media-stills/environment"
	"github.com/bcc-code/bcc-media-stills/utils"
	"github.com/bcc-code/bcc-media-stills/workflows"
	"github.com/rs/zerolog"
	"github.com/teris-io/shortid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
)

// workflowParams makes paths absolute, the worker does not share our working directory.
func workflowParams(opts options) (workflows.ExtractStillsParams, error) {
	params := workflows.ExtractStillsParams{
		Concurrency: opts.Concurrency,
		DropFrame:   opts.DropFrame,
		Rate:        opts.Rate,
	}

	var err error
	for _, p := range []struct {
		in  string
		out *string
	}{
		{opts.VideoPath, &params.VideoPath},
		{opts.XMLPath, &params.XMLPath},
		{opts.OutputDir, &params.OutputDir},
	} {
		*p.out, err = filepath.Abs(p.in)
		if err != nil {
			return params, err
		}
	}
	return params, nil
}

func runWorkflow(ctx context.Context, cfg environment.Config, opts options, stdout, stderr zerolog.Logger) int {
	params, err := workflowParams(opts)
	if err != nil {
		stderr.Error().Err(err).Msg("Oops, something went wrong")
		return 1
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    utils.NewTemporalLogger(stderr.Level(zerolog.WarnLevel)),
	})
	if err != nil {
		stderr.Error().Err(err).Msg("Couldn't connect to temporal")
		return 1
	}
	defer c.Close()

	workflowOptions := client.StartWorkflowOptions{
		ID:                    "stills-" + shortid.MustGenerate(),
		TaskQueue:             environment.GetWorkerQueue(),
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}

	run, err := c.ExecuteWorkflow(ctx, workflowOptions, workflows.ExtractStills, params)
	if err != nil {
		stderr.Error().Err(err).Msg("Couldn't start workflow")
		return 1
	}
	stdout.Info().Str("workflow", run.GetID()).Str("run", run.GetRunID()).Msg("Started ExtractStills")

	var result workflows.ExtractStillsResult
	err = run.Get(ctx, &result)
	if err != nil {
		stderr.Error().Err(err).Msg("Oops, something went wrong")
		return 1
	}

	stdout.Info().Strs("timecodes", result.Timecodes).Msgf("Found %d artwork timecodes", len(result.Timecodes))
	for _, s := range result.Stills {
		if s.Error == "" {
			stdout.Info().Str("timecode", s.Timecode).Str("output", s.OutputPath).Msgf("Printed the preview image for %s", s.Runtime)
			continue
		}
		stderr.Error().Str("error", s.Error).Str("timecode", s.Timecode).Str("stderr", s.Stderr).Msgf("Oops, no preview image for %s", s.Runtime)
	}

	if result.Failed > 0 {
		return 1
	}
	return 0
}
