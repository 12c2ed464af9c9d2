package services

import (
	"context"
	"image"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/auth"
	"github.com/dmitrijs2005/repslog/internal/client/blob"
	"github.com/dmitrijs2005/repslog/internal/client/imagex"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/logging"
)

var nowFn = time.Now

type imageUploader struct {
	blobs   blob.Store
	session auth.SessionProvider
	log     logging.Logger
}

// upload encodes and stores images one at a time under the signed-in
// user's partition. All images share one timestamp; the key index is the
// position in images, so a photo that fails to encode leaves a gap. On an
// upload failure the keys stored so far are returned with the error.
func (u imageUploader) upload(ctx context.Context, images []image.Image, entryID string) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	id, err := u.session.CurrentIdentity(ctx)
	if err != nil {
		return nil, common.Storage("upload images", err)
	}

	ts := nowFn()
	keys := make([]string, 0, len(images))
	for i, img := range images {
		data, err := imagex.EncodeJPEG(img, imagex.JPEGQuality)
		if err != nil {
			u.log.Warn(ctx, "skipping image", "entry_id", entryID, "index", i, "error", err)
			continue
		}

		key := imagex.EntryImageKey(id.StoragePartitionID, entryID, ts, i)
		stored, err := u.blobs.Put(ctx, key, data)
		if err != nil {
			return keys, common.Storage("upload image", err)
		}
		keys = append(keys, stored)
		u.log.Debug(ctx, "image uploaded", "entry_id", entryID, "key", stored, "bytes", len(data))
	}

	return keys, nil
}
