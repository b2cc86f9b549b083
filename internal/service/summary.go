package service

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const (
	// About parquet format: https://parquet.apache.org/documentation/latest/
	summaryRowGroupSize = 16 * 1024 * 1024 // 16M
	summaryParallel     = 4
	summaryExt          = "parquet"
)

// SummaryService writes flat session summary as parquet and uploads it.
type SummaryService struct {
	s3Service *S3Service
}

// NewSummaryService is constructor of SummaryService
func NewSummaryService(newS3 adaptor.S3ClientFactory) *SummaryService {
	return &SummaryService{
		s3Service: NewS3Service(newS3),
	}
}

// SummaryWriter writes SessionSummary rows to a local parquet file.
type SummaryWriter struct {
	filePath string
	fw       source.ParquetFile
	pw       *writer.ParquetWriter
	count    int
}

// NewSummaryWriter creates a temp parquet file.
func (x *SummaryService) NewSummaryWriter() (*SummaryWriter, error) {
	fd, err := ioutil.TempFile("", "*.parquet")
	if err != nil {
		return nil, errors.Wrap(err, "Fail to create a temp parquet file")
	}
	fd.Close()
	filePath := fd.Name()

	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "Fail to create a parquet file")
	}

	pw, err := writer.NewParquetWriter(fw, new(models.SessionSummary), summaryParallel)
	if err != nil {
		fw.Close()
		return nil, errors.Wrap(err, "Fail to create parquet writer")
	}

	pw.RowGroupSize = summaryRowGroupSize
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	logger.WithField("path", filePath).Debug("Open summary writer")

	return &SummaryWriter{
		filePath: filePath,
		fw:       fw,
		pw:       pw,
	}, nil
}

// Write appends summary of the record.
func (x *SummaryWriter) Write(record *models.SessionRecord) error {
	if err := x.pw.Write(models.NewSessionSummary(record)); err != nil {
		return errors.Wrap(err, "Fail to write session summary")
	}
	x.count++
	return nil
}

// Close finalizes the parquet file.
func (x *SummaryWriter) Close() error {
	defer x.fw.Close()

	if err := x.pw.WriteStop(); err != nil {
		logger.WithError(err).WithField("path", x.filePath).Error("Fail to WriteStop for SessionSummary")
		return errors.Wrap(err, "Fail to WriteStop for SessionSummary")
	}

	return nil
}

// FilePath returns path of the local parquet file
func (x *SummaryWriter) FilePath() string { return x.filePath }

// Count returns number of written rows
func (x *SummaryWriter) Count() int { return x.count }

// Delete removes the local parquet file
func (x *SummaryWriter) Delete() error {
	if err := os.Remove(x.filePath); err != nil {
		return errors.Wrapf(err, "Fail to remove summary file: %s", x.filePath)
	}
	return nil
}

// Upload sends closed parquet file to summary table of the date under base.
func (x *SummaryService) Upload(w *SummaryWriter, base models.S3Object, date time.Time) (*models.OutputObject, error) {
	output := models.NewOutputObject(models.OutputTableSummary, base, date, summaryExt)
	if err := x.s3Service.UploadFileToS3(w.FilePath(), *output.Object()); err != nil {
		return nil, err
	}

	if stat, err := os.Stat(w.FilePath()); err == nil {
		output.DataSize = stat.Size()
	}

	logger.WithFields(logrus.Fields{
		"rows": w.Count(),
		"dst":  output.Object().Path(),
	}).Info("Uploaded session summary")

	return output, nil
}

// ReadSummaryFile reads all rows of a local summary parquet file.
func ReadSummaryFile(filePath string) ([]models.SessionSummary, error) {
	fr, err := local.NewLocalFileReader(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open: %s", filePath)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(models.SessionSummary), summaryParallel)
	if err != nil {
		return nil, errors.Wrap(err, "Fail to create parquet reader")
	}
	defer pr.ReadStop()

	rows := make([]models.SessionSummary, int(pr.GetNumRows()))
	if err := pr.Read(&rows); err != nil {
		return nil, errors.Wrap(err, "Fail to read session summary")
	}

	return rows, nil
}
