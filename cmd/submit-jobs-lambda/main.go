package main

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/batch"
	"github.com/sanity-io/litter"
	"k8s.io/klog/v2"

	"github.com/bobrnor/batch-submit/internal/config"
	"github.com/bobrnor/batch-submit/internal/dispatch"
	"github.com/bobrnor/batch-submit/internal/logging"
)

const defaultLogLevel = "WARNING"

type Response struct {
	Status string
	Jobs   []dispatch.Job
}

var (
	batchMu     sync.Mutex
	batchClient *batch.Batch
	batchRegion string
)

// newBatchClient is replaced in tests.
var newBatchClient = getBatchClient

func getBatchClient(region string) (dispatch.Submitter, error) {
	batchMu.Lock()
	defer batchMu.Unlock()

	if batchClient != nil && batchRegion == region {
		return batchClient, nil
	}

	s, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})

	if err != nil {
		return nil, err
	}

	batchClient = batch.New(s)
	batchRegion = region
	return batchClient, nil
}

func HandleRequest(ctx context.Context, raw json.RawMessage) (Response, error) {
	cfg, err := config.Load()
	if err != nil {
		klog.ErrorS(err, "Bad config")
		return Response{}, err
	}

	level := cfg.LogLevel
	if level == "" {
		level = defaultLogLevel
	}
	if err := logging.SetLevel(level); err != nil {
		return Response{}, err
	}

	logger := klog.Background()
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = klog.LoggerWithValues(logger, "requestID", lc.AwsRequestID)
	}
	ctx = klog.NewContext(ctx, logger)
	logger.V(logging.TRACE).Info("Config loaded", "config", litter.Sdump(cfg))

	event, err := dispatch.DecodeEvent(raw)
	if err != nil {
		logger.Error(err, "Can't decode event", "event", string(raw))
		return Response{}, err
	}
	logger.V(logging.DEBUG).Info("Event decoded", "event", litter.Sdump(event))

	namer, err := dispatch.NewNamer(cfg.JobNaming)
	if err != nil {
		return Response{}, err
	}

	client, err := newBatchClient(cfg.Region)
	if err != nil {
		logger.Error(err, "Can't create batch client", "region", cfg.Region)
		return Response{}, err
	}

	jobs, err := dispatch.New(client, namer, cfg.JobQueue, cfg.JobDefinition).Dispatch(ctx, event)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Status: "OK",
		Jobs:   jobs,
	}, nil
}

func main() {
	defer klog.Flush()
	lambda.Start(HandleRequest)
}
