package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OutputTable is name of Athena table and also top directory of output objects.
type OutputTable string

const (
	// OutputTableSessions has encoded SessionRecord
	OutputTableSessions OutputTable = "sessions"
	// OutputTableSummary has SessionSummary parquet files
	OutputTableSummary OutputTable = "summary"
)

// DateFormat is format of partition key and input prefix
const DateFormat = "2006-01-02"

// HitPrefix returns S3 prefix of hit rows for the date.
// e.g.) s3://your-bucket/prefix/dt=2020-01-02/
func HitPrefix(base S3Object, date time.Time) *S3Object {
	return base.AppendKey(fmt.Sprintf("dt=%s/", date.Format(DateFormat)))
}

// OutputObject is an output object of a batch run. File format of the object is not
// defined and any encoding is acceptable. This structure is used to indicate
// path of S3 and partition for Athena.
//
// Key Format:
// s3://{bucket}/{prefix}{table}/dt={date}/{uuid}.{ext}
type OutputObject struct {
	DataSize     int64
	table        OutputTable
	base         S3Object
	dtKey        string
	fileNameSalt string
	ext          string
}

// NewOutputObject is constructor of OutputObject. *base* must have destination S3
// bucket and prefix. *ext* is extension of the object.
func NewOutputObject(table OutputTable, base S3Object, date time.Time, ext string) *OutputObject {
	return &OutputObject{
		table:        table,
		base:         base,
		dtKey:        date.Format(DateFormat),
		fileNameSalt: uuid.New().String(),
		ext:          ext,
	}
}

// Partition returns a part of path
func (x *OutputObject) Partition() string {
	return strings.Join([]string{
		x.TableName(),
		x.PartitionLabel(),
	}, "/")
}

// PartitionPath returns S3 path to top of the partition. The path including s3:// prefix and bucket name.
// e.g.) s3://your-bucket/prefix/sessions/dt=2020-01-02/
func (x *OutputObject) PartitionPath() string {
	return x.base.AppendKey(x.Partition() + "/").Path()
}

// PartitionKeys returns map of partition name and value
func (x *OutputObject) PartitionKeys() map[string]string {
	return map[string]string{
		"dt": x.dtKey,
	}
}

// PartitionLabel returns a part of S3 path for Athena partition
func (x *OutputObject) PartitionLabel() string {
	return fmt.Sprintf("dt=%s", x.dtKey)
}

// TableName returns Athena table name as string type
func (x *OutputObject) TableName() string {
	return string(x.table)
}

// Object returns S3 location of the object
func (x *OutputObject) Object() *S3Object {
	return x.base.AppendKey(strings.Join([]string{
		x.Partition(),
		fmt.Sprintf("%s.%s", x.fileNameSalt, x.ext),
	}, "/"))
}

// PartitionQueue builds arguments to add a partition of the object.
func (x *OutputObject) PartitionQueue() *PartitionQueue {
	return &PartitionQueue{
		Location:  x.PartitionPath(),
		TableName: x.TableName(),
		Keys:      x.PartitionKeys(),
	}
}
