package models

// PartitionQueue is arguments of partitioner to add a new partition
type PartitionQueue struct {
	Location  string            `json:"location"`
	TableName string            `json:"table_name"`
	Keys      map[string]string `json:"keys"`
}

// SessionQueue is sent to notify queue after a batch run completed.
type SessionQueue struct {
	Date     string      `json:"date"`
	Objects  []*S3Object `json:"objects"`
	Sessions int         `json:"sessions"`
	Hits     int         `json:"hits"`
	Dropped  int         `json:"dropped"`
	Skipped  int         `json:"skipped"`
}
