// file: internals/features/masters/service/docstore.go
//
// Read-only client for the external document store: master bank list,
// customer display names and resident member profiles live there, synced by
// another system. The core never writes to it.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"nitihub_backend/internals/configs"
)

var (
	docClient *mongo.Client
	docDB     *mongo.Database
)

var ErrDocStoreUnavailable = errors.New("document store not connected")

func ConnectDocStore() error {
	if configs.MongoURI == "" {
		return errors.New("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(configs.MongoURI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}
	docClient = client
	docDB = client.Database(configs.MongoDatabase)
	log.Println("✅ Doc store connected.")
	return nil
}

func CloseDocStore() {
	if docClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = docClient.Disconnect(ctx)
}

type Bank struct {
	ID      string `bson:"_id" json:"id"`
	Title   string `bson:"title" json:"title"`
	TitleEN string `bson:"title_en" json:"title_en,omitempty"`
	LogoURL string `bson:"logo_url" json:"logo_url,omitempty"`
}

type Customer struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

type Member struct {
	UID        string `bson:"uid" json:"uid"`
	CustomerID string `bson:"customer_id" json:"customer_id"`
	HouseNo    string `bson:"house_no" json:"house_no"`
	Name       string `bson:"name" json:"name"`
	Topic      string `bson:"topic" json:"topic,omitempty"` // push topic of the member's devices
}

func Banks(ctx context.Context) ([]Bank, error) {
	if docDB == nil {
		return nil, ErrDocStoreUnavailable
	}
	cur, err := docDB.Collection("banks").Find(ctx, bson.M{"status": bson.M{"$ne": 2}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []Bank
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func CustomersByIDs(ctx context.Context, ids []string) ([]Customer, error) {
	if docDB == nil {
		return nil, ErrDocStoreUnavailable
	}
	filter := bson.M{}
	if len(ids) > 0 {
		filter["_id"] = bson.M{"$in": ids}
	}
	cur, err := docDB.Collection("customers").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []Customer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func CustomerByID(ctx context.Context, id string) (*Customer, error) {
	if docDB == nil {
		return nil, ErrDocStoreUnavailable
	}
	var c Customer
	err := docDB.Collection("customers").FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CommunityStats is the membership footprint of one customer, read off the
// members collection for the dashboard. Display-only.
type CommunityStats struct {
	TotalUnits       int64 `json:"total_units"`
	ActiveResidents  int64 `json:"active_residents"`
	PendingApprovals int64 `json:"pending_approvals"`
}

func CommunityCounts(ctx context.Context, customerID string) (*CommunityStats, error) {
	if docDB == nil {
		return nil, ErrDocStoreUnavailable
	}
	members := docDB.Collection("members")
	live := bson.M{"customer_id": customerID, "status": bson.M{"$ne": 2}}

	units, err := members.Distinct(ctx, "house_no", live)
	if err != nil {
		return nil, err
	}
	active, err := members.CountDocuments(ctx, bson.M{
		"customer_id": customerID, "status": bson.M{"$ne": 2}, "approved": true,
	})
	if err != nil {
		return nil, err
	}
	pending, err := members.CountDocuments(ctx, bson.M{
		"customer_id": customerID, "status": bson.M{"$ne": 2}, "approved": false,
	})
	if err != nil {
		return nil, err
	}
	return &CommunityStats{
		TotalUnits:       int64(len(units)),
		ActiveResidents:  active,
		PendingApprovals: pending,
	}, nil
}

// MembersByHouses resolves every member registered under the given houses of
// one customer. Used by the notification emitter before the business
// transaction opens.
func MembersByHouses(ctx context.Context, customerID string, houseNos []string) ([]Member, error) {
	if docDB == nil {
		return nil, ErrDocStoreUnavailable
	}
	if len(houseNos) == 0 {
		return nil, nil
	}
	cur, err := docDB.Collection("members").Find(ctx, bson.M{
		"customer_id": customerID,
		"house_no":    bson.M{"$in": houseNos},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []Member
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
