package filestorage

import "context"

type Uploader interface {
	UploadUrl(ctx context.Context, fileUrl string) (string, error)
	UploadJson(ctx context.Context, json interface{}) (string, error)
}

// IpfsUri returns ipfs://hash, or the hash under gateway when one is set.
func IpfsUri(gateway string, hash string) string {
	if gateway == "" {
		return "ipfs://" + hash
	}
	if gateway[len(gateway)-1] != '/' {
		gateway += "/"
	}
	return gateway + hash
}
