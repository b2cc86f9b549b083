package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/guregu/dynamo"
	"github.com/pkg/errors"
)

// VisitorRepository caches full visitor ID of client ID
type VisitorRepository interface {
	GetFullVisitorID(propertyID, clientID string) (string, bool, error)
	PutFullVisitorID(propertyID, clientID, fullVisitorID string) error
}

const defaultVisitorTTL = 90 * 24 * time.Hour

// VisitorDynamoDB is implementation of VisitorRepository
type VisitorDynamoDB struct {
	// TTL is lifetime of cached ID. expires_at attribute is set by TTL.
	TTL   time.Duration
	table dynamo.Table
}

type visitorItem struct {
	PKey          string `dynamo:"pk"`
	SKey          string `dynamo:"sk"`
	FullVisitorID string `dynamo:"full_visitor_id"`
	ExpiresAt     int64  `dynamo:"expires_at"`
}

func visitorHashKey(propertyID string) string {
	return fmt.Sprintf("visitor:%s", propertyID)
}

// NewVisitorDynamoDB is a constructor of VisitorDynamoDB as VisitorRepository
func NewVisitorDynamoDB(region, tableName string) *VisitorDynamoDB {
	ssn := session.Must(session.NewSession())
	db := dynamo.New(ssn, &aws.Config{Region: aws.String(region)})

	return &VisitorDynamoDB{
		TTL:   defaultVisitorTTL,
		table: db.Table(tableName),
	}
}

// GetFullVisitorID looks up cached ID. false is returned if not found.
func (x *VisitorDynamoDB) GetFullVisitorID(propertyID, clientID string) (string, bool, error) {
	var item visitorItem
	err := x.table.
		Get("pk", visitorHashKey(propertyID)).
		Range("sk", dynamo.Equal, clientID).
		One(&item)

	switch {
	case err == dynamo.ErrNotFound:
		return "", false, nil
	case isResourceNotFoundErr(err):
		return "", false, errors.Wrap(err, "Visitor table is not found")
	case err != nil:
		return "", false, errors.Wrap(err, "Fail to get full visitor ID in DynamoDB")
	}

	return item.FullVisitorID, true, nil
}

// PutFullVisitorID saves ID. An existing item is not overwritten.
func (x *VisitorDynamoDB) PutFullVisitorID(propertyID, clientID, fullVisitorID string) error {
	item := visitorItem{
		PKey:          visitorHashKey(propertyID),
		SKey:          clientID,
		FullVisitorID: fullVisitorID,
		ExpiresAt:     time.Now().UTC().Add(x.TTL).Unix(),
	}

	if err := x.table.Put(item).If("attribute_not_exists(pk)").Run(); err != nil {
		if isConditionalCheckErr(err) {
			return nil
		}
		return errors.Wrap(err, "Fail to put full visitor ID to DynamoDB")
	}

	return nil
}

// VisitorMemory is on memory VisitorRepository for a single batch run without
// DynamoDB table.
type VisitorMemory struct {
	mutex sync.RWMutex
	ids   map[string]string
}

// NewVisitorMemory is constructor of VisitorMemory
func NewVisitorMemory() *VisitorMemory {
	return &VisitorMemory{ids: map[string]string{}}
}

// GetFullVisitorID of VisitorMemory
func (x *VisitorMemory) GetFullVisitorID(propertyID, clientID string) (string, bool, error) {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	id, ok := x.ids[visitorHashKey(propertyID)+"/"+clientID]
	return id, ok, nil
}

// PutFullVisitorID of VisitorMemory
func (x *VisitorMemory) PutFullVisitorID(propertyID, clientID, fullVisitorID string) error {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	x.ids[visitorHashKey(propertyID)+"/"+clientID] = fullVisitorID
	return nil
}
