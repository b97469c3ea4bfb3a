// Package dispatch submits one AWS Batch job per URL of an invocation event.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/batch"
	"k8s.io/klog/v2"

	"github.com/bobrnor/batch-submit/internal/logging"
)

var (
	ErrInvalidJobName = errors.New("invalid job name")
	ErrSubmit         = errors.New("can't submit job")
)

// Submitter is the part of *batch.Batch the dispatcher needs.
type Submitter interface {
	SubmitJobWithContext(ctx aws.Context, input *batch.SubmitJobInput, opts ...request.Option) (*batch.SubmitJobOutput, error)
}

type SubmissionRequest struct {
	JobName       string
	JobQueue      string
	JobDefinition string
	URL           string
}

func (r SubmissionRequest) Input() *batch.SubmitJobInput {
	return &batch.SubmitJobInput{
		JobName:       aws.String(r.JobName),
		JobQueue:      aws.String(r.JobQueue),
		JobDefinition: aws.String(r.JobDefinition),
		Parameters: map[string]*string{
			"url": aws.String(r.URL),
		},
	}
}

// Job is the handle returned for a submitted job.
type Job struct {
	JobName string
	JobID   string
	URL     string
}

type Dispatcher struct {
	client        Submitter
	namer         Namer
	jobQueue      string
	jobDefinition string
}

func New(client Submitter, namer Namer, jobQueue, jobDefinition string) *Dispatcher {
	return &Dispatcher{
		client:        client,
		namer:         namer,
		jobQueue:      jobQueue,
		jobDefinition: jobDefinition,
	}
}

// Dispatch submits the event URLs in order, one call at a time. The first
// failure stops the batch; jobs submitted before it are left running and
// returned alongside the error.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) ([]Job, error) {
	logger := klog.FromContext(ctx)
	jobs := make([]Job, 0, len(event.URLs))

	for _, u := range event.URLs {
		name, err := d.namer.JobName(ctx, u)
		if err != nil {
			return jobs, err
		}
		if name == "" {
			return jobs, fmt.Errorf("%w: empty name derived from %q", ErrInvalidJobName, u)
		}

		req := SubmissionRequest{
			JobName:       name,
			JobQueue:      d.jobQueue,
			JobDefinition: d.jobDefinition,
			URL:           u,
		}

		out, err := d.client.SubmitJobWithContext(ctx, req.Input())
		if err != nil {
			var aerr awserr.Error
			if errors.As(err, &aerr) {
				logger.Error(err, "Can't submit job", "jobName", name, "url", u, "code", aerr.Code())
			}
			return jobs, fmt.Errorf("%w %q: %w", ErrSubmit, name, err)
		}

		jobs = append(jobs, Job{
			JobName: aws.StringValue(out.JobName),
			JobID:   aws.StringValue(out.JobId),
			URL:     u,
		})
	}

	logger.V(logging.DEBUG).Info("Batch submitted", "count", len(jobs))
	return jobs, nil
}
