package filestorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/zde37/pinata-go-sdk/pinata"

	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

type PinataUploader struct {
	client *pinata.Client
}

var _ Uploader = (*PinataUploader)(nil)

func NewPinataUploader(jwtKey string) *PinataUploader {
	return &PinataUploader{
		client: pinata.New(pinata.NewAuthWithJWT(jwtKey)),
	}
}

func NewPinataUploaderFromOptions(options setup.NftStorageOptions) (*PinataUploader, error) {
	if !options.Configured {
		return nil, errors.New("nft storage is not configured, set " + setup.EnvNftStorageApiKey)
	}
	return NewPinataUploader(options.ApiKey), nil
}

func (u *PinataUploader) UploadUrl(ctx context.Context, fileUrl string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pinResponse, err := u.client.PinURL(fileUrl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to pinata: %w", err)
	}

	return pinResponse.IpfsHash, nil
}

func (u *PinataUploader) UploadJson(ctx context.Context, json interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pinResponse, err := u.client.PinJSON(json, nil)
	if err != nil {
		return "", fmt.Errorf("failed to upload json to pinata: %w", err)
	}

	return pinResponse.IpfsHash, nil
}
