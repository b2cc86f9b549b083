package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/athena"
	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultAthenaPollInterval = 3 * time.Second

// AthenaService registers partitions of output tables.
type AthenaService struct {
	// PollInterval is wait time between GetQueryExecution calls
	PollInterval time.Duration

	newAthena adaptor.AthenaClientFactory
	region    string
	database  string
	output    string
}

// NewAthenaService is constructor of AthenaService. output is S3 path to
// store query results.
func NewAthenaService(newAthena adaptor.AthenaClientFactory, region, database, output string) *AthenaService {
	return &AthenaService{
		PollInterval: defaultAthenaPollInterval,
		newAthena:    newAthena,
		region:       region,
		database:     database,
		output:       output,
	}
}

// PartitionQuery builds a query to add partition.
func PartitionQuery(database string, q *models.PartitionQueue) string {
	var keys []string
	for k, v := range q.Keys {
		keys = append(keys, fmt.Sprintf("%s='%s'", k, v))
	}
	sort.Strings(keys)

	return fmt.Sprintf("ALTER TABLE %s.%s ADD IF NOT EXISTS PARTITION (%s) LOCATION '%s'",
		database, q.TableName, strings.Join(keys, ", "), q.Location)
}

// AddPartition executes ALTER TABLE query and waits for completion of the query.
func (x *AthenaService) AddPartition(ctx context.Context, q *models.PartitionQueue) error {
	client := x.newAthena(x.region)
	sql := PartitionQuery(x.database, q)

	input := &athena.StartQueryExecutionInput{
		QueryString: aws.String(sql),
		ResultConfiguration: &athena.ResultConfiguration{
			OutputLocation: aws.String(x.output),
		},
	}

	logger.WithField("input", input).Info("Athena Query")

	started, err := client.StartQueryExecution(input)
	if err != nil {
		return errors.Wrap(err, "Fail to execute a partitioning query")
	}

	for {
		output, err := client.GetQueryExecution(&athena.GetQueryExecutionInput{
			QueryExecutionId: started.QueryExecutionId,
		})
		if err != nil {
			return errors.Wrap(err, "Fail to get an execution result")
		}

		state := aws.StringValue(output.QueryExecution.Status.State)
		switch state {
		case athena.QueryExecutionStateQueued, athena.QueryExecutionStateRunning:
			logger.WithField("output", output).Debug("Waiting...")

			select {
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "Canceled while waiting partitioning query")
			case <-time.After(x.PollInterval):
			}
			continue

		case athena.QueryExecutionStateSucceeded:
			logger.WithFields(logrus.Fields{
				"table":    q.TableName,
				"location": q.Location,
			}).Info("Added partition")
			return nil

		default:
			return errors.Errorf("Partitioning query is %s: %s (%s)", state, sql,
				aws.StringValue(output.QueryExecution.Status.StateChangeReason))
		}
	}
}
