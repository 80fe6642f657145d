package experiment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucket_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		subject := fmt.Sprintf("cust-%d", i)
		first := Bucket(subject, "exp-checkout", 3)
		for j := 0; j < 10; j++ {
			assert.Equal(t, first, Bucket(subject, "exp-checkout", 3))
		}
	}
}

func TestBucket_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		b := Bucket(fmt.Sprintf("cust-%d", i), "exp-checkout", 4)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 4)
	}
}

func TestBucket_IndependentPerExperiment(t *testing.T) {
	// The same subject may land in different buckets for different
	// experiments; across many subjects the assignments must not be
	// identical between two experiments.
	same := 0
	for i := 0; i < 1000; i++ {
		subject := fmt.Sprintf("cust-%d", i)
		if Bucket(subject, "exp-a", 2) == Bucket(subject, "exp-b", 2) {
			same++
		}
	}
	assert.Greater(t, same, 0)
	assert.Less(t, same, 1000)
}

func TestBucket_RoughlyUniform(t *testing.T) {
	const n = 4
	const subjects = 10000
	counts := make([]int, n)
	for i := 0; i < subjects; i++ {
		counts[Bucket(fmt.Sprintf("cust-%d", i), "exp-uniform", n)]++
	}

	for v, count := range counts {
		assert.InDelta(t, subjects/n, count, subjects/n/5, "variant %d", v)
	}
}

func TestBucket_InvalidVariantCount(t *testing.T) {
	assert.Equal(t, 0, Bucket("cust-1", "exp-a", 0))
	assert.Equal(t, 0, Bucket("cust-1", "exp-a", -1))
}

func TestAllocationFraction(t *testing.T) {
	for i := 0; i < 1000; i++ {
		subject := fmt.Sprintf("cust-%d", i)
		f := AllocationFraction(subject, "exp-a")
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
		assert.Equal(t, f, AllocationFraction(subject, "exp-a"))
	}
}

func TestAllocationFraction_IndependentOfBucket(t *testing.T) {
	// Enrollment hashing is salted so the enrolled population is not biased
	// toward particular variants.
	enrolledInVariant0 := 0
	enrolled := 0
	for i := 0; i < 10000; i++ {
		subject := fmt.Sprintf("cust-%d", i)
		if AllocationFraction(subject, "exp-a") < 0.5 {
			enrolled++
			if Bucket(subject, "exp-a", 2) == 0 {
				enrolledInVariant0++
			}
		}
	}
	assert.InDelta(t, enrolled/2, enrolledInVariant0, float64(enrolled)/10)
}
