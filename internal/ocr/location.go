package ocr

import (
	"fmt"
	"strings"
)

// Location addresses a stored document the recognition service reads
// directly.
type Location struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func (l Location) String() string {
	return fmt.Sprintf("s3://%s/%s", l.Bucket, l.Key)
}

// ParseLocation accepts either an s3://bucket/key URI or a bare object key,
// which resolves against defaultBucket.
func ParseLocation(raw, defaultBucket string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}

	if rest, ok := strings.CutPrefix(raw, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %s", ErrInvalidLocation, raw)
		}
		return Location{Bucket: bucket, Key: key}, nil
	}

	if defaultBucket == "" {
		return Location{}, fmt.Errorf("%w: %s has no bucket and none is configured", ErrInvalidLocation, raw)
	}

	return Location{Bucket: defaultBucket, Key: strings.TrimPrefix(raw, "/")}, nil
}
