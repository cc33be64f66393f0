package test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tidepool-org/dosing/store"
	"github.com/tidepool-org/dosing/test"
)

const (
	mongoTestHost = "mongodb://127.0.0.1:27017"
	mongoTimeout  = time.Second * 5
)

var database *mongo.Database

func SetupDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	client, err := store.NewClient(ctx, mongoTestHost)
	Expect(err).ToNot(HaveOccurred())
	Expect(client.Ping(ctx, nil)).To(Succeed())

	databaseName := fmt.Sprintf("dosing_test_%s_%d", test.Faker.Letter(), GinkgoParallelProcess())
	database = client.Database(databaseName)
}

func TeardownDatabase() {
	Expect(database).ToNot(BeNil())
	Expect(database.Drop(context.Background())).To(Succeed())

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	Expect(database.Client().Disconnect(ctx)).To(Succeed())
	database = nil
}

func GetTestDatabase() *mongo.Database {
	Expect(database).ToNot(BeNil())
	return database
}
