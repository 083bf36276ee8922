package main

import (
	"context"
	"log"
	"os"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/mongodb"
	mongorepo "github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories/mongodb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bulk-loads a CSV or Excel number file into a custom pool, for operators
// seeding a pool too large for the admin upload endpoint.
//
// Usage: import_numbers <poolID> <file.csv|file.xlsx>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "raffle-platform"
	}

	if len(os.Args) < 3 {
		log.Fatal("Usage: import_numbers <poolID> <file.csv|file.xlsx>")
	}
	poolID, err := primitive.ObjectIDFromHex(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid pool ID: %v", err)
	}
	filePath := os.Args[2]

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(dbName)

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	poolService := services.NewPoolService(mongorepo.NewNumberPoolRepository(db), mongorepo.NewRaffleRepository(db))
	result, err := poolService.ImportNumbers(context.Background(), poolID, filePath, file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	if !result.Success {
		log.Fatalf("No valid numbers imported: %v", result.Errors)
	}

	log.Printf("Imported %d numbers (%d duplicates, %d invalid), range %d-%d",
		result.Count, result.DuplicateCount, result.InvalidCount, result.Min, result.Max)
}
