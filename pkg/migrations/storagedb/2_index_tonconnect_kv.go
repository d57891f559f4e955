package storagedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/ton-deeplink/pkg/pgutil/migrations"
	"github.com/chainsafe/ton-deeplink/pkg/storage/pgstore"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating tonconnect_kv indexes...")
		return mghelper.CreateModelIndexes(ctx, db, &pgstore.EntryDao{}, "updated_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping tonconnect_kv indexes...")
		return mghelper.DropModelIndexes(ctx, db, &pgstore.EntryDao{}, "updated_at")
	})
}
