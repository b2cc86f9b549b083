package adaptor

import "github.com/m-mizutani/gasession/internal"

var logger = internal.Logger

func init() {
	awsS3ClientCache = make(map[string]*awsS3Client)
}
