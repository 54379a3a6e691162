// Command export writes the full appointment book to appointments.xlsx.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/cuure-health/booking-bot/internal/admin"
)

func main() {
	_ = godotenv.Load()

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	outFile := "appointments.xlsx"
	if len(os.Args) >= 2 {
		outFile = os.Args[1]
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	store := admin.NewStore(db)
	rows, err := store.ExportRows(context.Background())
	if err != nil {
		log.Fatalf("read appointments: %v", err)
	}

	workbook, err := admin.BuildWorkbook(rows)
	if err != nil {
		log.Fatalf("build workbook: %v", err)
	}
	defer workbook.Close()

	if err := workbook.SaveAs(outFile); err != nil {
		log.Fatalf("write %s: %v", outFile, err)
	}
	fmt.Printf("%s created with %d appointment(s)\n", outFile, len(rows))
}
