package nft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NethermindEth/arenastate/pkg/arenastate/filestorage"
)

type NftUploader struct {
	uploader filestorage.Uploader
	gateway  string
}

func NewNftUploader(uploader filestorage.Uploader, gateway string) *NftUploader {
	return &NftUploader{
		uploader: uploader,
		gateway:  gateway,
	}
}

// UploadGame pins the icon, points the metadata image at it, then pins the
// metadata and returns its hash.
func (u *NftUploader) UploadGame(ctx context.Context, metadata *GameMetadata, iconUrl string) (string, error) {
	if metadata == nil {
		return "", errors.New("game metadata is nil")
	}

	imageIpfsHash, err := u.uploader.UploadUrl(ctx, iconUrl)
	if err != nil {
		return "", fmt.Errorf("failed to upload game icon to ipfs: %w", err)
	}
	metadata.Image = filestorage.IpfsUri(u.gateway, imageIpfsHash)

	metadataIpfsHash, err := u.uploader.UploadJson(ctx, metadata)
	if err != nil {
		return "", fmt.Errorf("failed to upload game metadata to ipfs: %w", err)
	}

	slog.Info("uploaded game metadata", "metadata", metadataIpfsHash, "image", imageIpfsHash)
	return metadataIpfsHash, nil
}
