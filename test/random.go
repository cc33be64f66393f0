package test

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/onsi/ginkgo/v2"

	"github.com/tidepool-org/dosing/glucose"
)

var (
	Faker  = faker.NewWithSeed(Source)
	Rand   = rand.New(Source)
	Source = rand.NewSource(ginkgo.GinkgoRandomSeed())
)

// RandomPredictions returns count mg/dL predictions five minutes apart,
// starting at start, with values uniformly drawn from [min, max].
func RandomPredictions(start time.Time, count int, min, max float64) []glucose.Value {
	predictions := make([]glucose.Value, count)
	for i := range predictions {
		value := min + Rand.Float64()*(max-min)
		predictions[i] = glucose.NewValue(start.Add(time.Duration(i)*5*time.Minute), glucose.MgdLQuantity(value))
	}
	return predictions
}

// RandomRate returns a rate in [min, max] rounded to 0.05.
func RandomRate(min, max float64) float64 {
	return float64(Faker.IntBetween(int(min*20), int(max*20))) / 20
}
