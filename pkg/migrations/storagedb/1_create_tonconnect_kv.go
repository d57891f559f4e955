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
		log.Println("creating tonconnect_kv table...")
		return mghelper.CreateSchema(ctx, db, &pgstore.EntryDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping tonconnect_kv table...")
		return mghelper.DropTables(ctx, db, &pgstore.EntryDao{})
	})
}
