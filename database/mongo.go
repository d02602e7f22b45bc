package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop/config"
)

var Client *mongo.Client
var DB *mongo.Database

func ConnectMongo() {
	uri := config.GetEnv("MONGO_URI", "")
	dbName := config.GetEnv("DB_NAME", "")

	if uri == "" || dbName == "" {
		log.Fatal("❌ MONGO_URI or DB_NAME not set in environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ MongoDB connection error:", err)
	}

	Client = client
	DB = client.Database(dbName)

	log.Println("✅ Connected to MongoDB")
}

var ProductCollection *mongo.Collection
var CategoryCollection *mongo.Collection
var UserCollection *mongo.Collection

func InitCollections() {
	ProductCollection = DB.Collection("products")
	CategoryCollection = DB.Collection("categories")
	UserCollection = DB.Collection("users")
}
