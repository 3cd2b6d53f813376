package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"bannedbooks/internal/admin"
	"bannedbooks/internal/apperr"
	"bannedbooks/internal/book"
	"bannedbooks/internal/config"
	"bannedbooks/internal/crud"
	"bannedbooks/internal/logging"
	"bannedbooks/internal/store"

	"go.uber.org/zap"
)

func main() {
	withBooks := flag.Bool("books", false, "Also insert the sample catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		zap.NewExample().Fatal("cannot build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	gw, err := store.Open(ctx, cfg.DB.Driver, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.Timeout)
	if err != nil {
		logger.Fatal("cannot open database", zap.Error(err))
	}
	defer gw.Close()

	if err := seedAdmin(ctx, admin.NewStore(gw), os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		logger.Fatal("seeding admin failed", zap.Error(err))
	}
	logger.Info("admin account ready")

	if *withBooks {
		n, err := seedBooks(ctx, book.NewService(gw, cfg.PageSize), sampleBooks)
		if err != nil {
			logger.Fatal("seeding books failed", zap.Error(err))
		}
		logger.Info("sample books inserted", zap.Int("inserted", n), zap.Int("total", len(sampleBooks)))
	}
}

type registrar interface {
	Register(ctx context.Context, username, password string) error
}

// seedAdmin creates the admin account. An existing account with the same name is kept.
func seedAdmin(ctx context.Context, r registrar, username, password string) error {
	if username == "" {
		username = "admin"
	}
	if password == "" {
		return apperr.Validation("ADMIN_PASSWORD is required", nil)
	}
	err := r.Register(ctx, username, password)
	if apperr.Code(err) == http.StatusConflict {
		return nil
	}
	return err
}

type creator interface {
	Create(ctx context.Context, nb book.NewBook) (crud.Message, error)
}

// seedBooks inserts books one by one and skips those already in the catalog.
func seedBooks(ctx context.Context, c creator, books []book.NewBook) (int, error) {
	inserted := 0
	for _, nb := range books {
		_, err := c.Create(ctx, nb)
		switch {
		case err == nil:
			inserted++
		case apperr.Code(err) == http.StatusConflict:
		default:
			return inserted, err
		}
	}
	return inserted, nil
}

func ptr(s string) *string { return &s }

var sampleBooks = []book.NewBook{
	{ISBN: "9780451524935", Title: "1984", Author: "George Orwell", BannedBy: "Jackson County School Board", BanReason: ptr("Pro-communist and sexual content")},
	{ISBN: "9780060850524", Title: "Brave New World", Author: "Aldous Huxley", BannedBy: "Ireland Censorship of Publications Board", BanReason: ptr("Language and sexual content")},
	{ISBN: "9780061120084", Title: "To Kill a Mockingbird", Author: "Harper Lee", BannedBy: "Biloxi School District", BanReason: ptr("Racial slurs")},
	{ISBN: "9780385490818", Title: "The Handmaid's Tale", Author: "Margaret Atwood", BannedBy: "Judson Independent School District", BanReason: ptr("Sexual content and profanity")},
	{ISBN: "9780316769488", Title: "The Catcher in the Rye", Author: "J. D. Salinger", BannedBy: "Marysville Joint Unified School District", BanReason: ptr("Profanity")},
	{ISBN: "9781400033416", Title: "Beloved", Author: "Toni Morrison", BannedBy: "Fairfax County Public Schools", BanReason: ptr("Violence and sexual content")},
	{ISBN: "9780679732761", Title: "Maus", Author: "Art Spiegelman", BannedBy: "McMinn County School Board", BanReason: ptr("Nudity and profanity")},
	{ISBN: "9780743273565", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", BannedBy: "Baptist College, Charleston", BanReason: ptr("Language and sexual references")},
}
