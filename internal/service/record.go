package service

import (
	"io"
	"sync"
	"time"

	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultObjectSizeLimit = 200 * 1024 * 1024

// RecordService encodes session records and streams them to S3.
type RecordService struct {
	// ObjectSizeLimit is max raw size of an object. A new object is created
	// when written size exceeds the limit.
	ObjectSizeLimit int64

	s3Service  *S3Service
	newEncoder adaptor.EncoderFactory
	newDecoder adaptor.DecoderFactory
}

// NewRecordService is constructor of RecordService
func NewRecordService(newS3 adaptor.S3ClientFactory, newEncoder adaptor.EncoderFactory, newDecoder adaptor.DecoderFactory) *RecordService {
	return &RecordService{
		ObjectSizeLimit: defaultObjectSizeLimit,
		s3Service:       NewS3Service(newS3),
		newEncoder:      newEncoder,
		newDecoder:      newDecoder,
	}
}

// NewDumper creates RecordDumper that writes objects to sessions table of the
// date under base.
func (x *RecordService) NewDumper(base models.S3Object, date time.Time) *RecordDumper {
	return &RecordDumper{
		base:       base,
		date:       date,
		newEncoder: x.newEncoder,
		s3Service:  x.s3Service,
		sizeLimit:  x.ObjectSizeLimit,
	}
}

// Load downloads an object and sends decoded records to ch. ch is not closed.
func (x *RecordService) Load(src models.S3Object, ch chan *models.SessionRecord) error {
	body, err := x.s3Service.AsyncDownload(src)
	if err != nil {
		return errors.Wrap(err, "Failed AsyncDownload")
	}

	return x.Read(body, ch)
}

// Read decodes records from r and sends them to ch. r is closed.
func (x *RecordService) Read(r io.ReadCloser, ch chan *models.SessionRecord) error {
	defer r.Close()

	decoder := x.newDecoder(r)
	for {
		var record models.SessionRecord
		if err := decoder.Decode(&record); err != nil {
			if err != io.EOF {
				return errors.Wrap(err, "Failed to decode record")
			}
			return nil
		}

		ch <- &record
	}
}

// RecordDumper has multiple pipelines to split too large output.
type RecordDumper struct {
	base       models.S3Object
	date       time.Time
	newEncoder adaptor.EncoderFactory
	s3Service  *S3Service
	sizeLimit  int64

	current   *pipeline
	pipelines []*pipeline
	count     int
}

func (x *RecordDumper) renewPipeline() (*pipeline, error) {
	if x.current != nil {
		logger.WithFields(logrus.Fields{
			"size":  x.current.encoder.Size(),
			"limit": x.sizeLimit,
		}).Debug("renew pipeline")

		if err := x.current.close(); err != nil {
			return nil, err
		}
	}

	pline := newPipeline(x.base, x.date, x.s3Service, x.newEncoder)
	x.current = pline
	x.pipelines = append(x.pipelines, pline)

	return pline, nil
}

// Dump encodes a record to current object.
func (x *RecordDumper) Dump(record *models.SessionRecord) error {
	pline := x.current
	if pline == nil || pline.encoder.Size() > x.sizeLimit {
		var err error
		if pline, err = x.renewPipeline(); err != nil {
			return errors.Wrap(err, "Failed newPipeline")
		}
	}

	if err := pline.encoder.Encode(record); err != nil {
		return errors.Wrap(err, "Failed pipeline.encoder.Encode")
	}
	x.count++

	return nil
}

// Close flushes current object and waits for completion of upload.
func (x *RecordDumper) Close() error {
	if x.current == nil {
		return nil
	}

	if err := x.current.close(); err != nil {
		return err
	}
	x.current = nil

	logger.WithFields(logrus.Fields{
		"records": x.count,
		"objects": len(x.pipelines),
	}).Info("Dumped session records")

	return nil
}

// Objects returns output objects created by Dump.
func (x *RecordDumper) Objects() []*models.OutputObject {
	var objects []*models.OutputObject
	for _, p := range x.pipelines {
		objects = append(objects, p.output)
	}
	return objects
}

// ------------------------------------------------------------
// pipeline connects encoder and S3 upload by io.Pipe
//

type pipeline struct {
	encoder    adaptor.Encoder
	output     *models.OutputObject
	pipeWriter io.WriteCloser
	wg         *sync.WaitGroup
	uploadErr  error
}

func newPipeline(base models.S3Object, date time.Time, s3Service *S3Service, newEncoder adaptor.EncoderFactory) *pipeline {
	pr, pw := io.Pipe()
	encoder := newEncoder(pw)
	output := models.NewOutputObject(models.OutputTableSessions, base, date, encoder.Ext())

	pline := &pipeline{
		encoder:    encoder,
		output:     output,
		pipeWriter: pw,
		wg:         &sync.WaitGroup{},
	}

	pline.wg.Add(1)
	go func() {
		defer pline.wg.Done()
		obj := output.Object()
		if err := s3Service.AsyncUpload(pr, *obj, encoder.ContentEncoding()); err != nil {
			logger.WithError(err).Error("Failed AsyncUpload")
			pline.uploadErr = err
			// unblock writer side
			pr.CloseWithError(err)
			return
		}
		logger.WithField("obj", obj).Info("Done upload")
	}()

	return pline
}

func (x *pipeline) close() error {
	if err := x.encoder.Close(); err != nil {
		return errors.Wrap(err, "Failed pipeline.encoder.Close")
	}

	if err := x.pipeWriter.Close(); err != nil {
		return errors.Wrap(err, "Failed pline.pipeWriter.Close")
	}

	x.wg.Wait()
	if x.uploadErr != nil {
		return x.uploadErr
	}

	x.output.DataSize = x.encoder.Size()
	logger.WithField("output", x.output).Debug("Closed pipeline")

	return nil
}
