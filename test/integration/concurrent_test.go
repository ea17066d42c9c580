package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/test/mock"
	"github.com/crewlink/crew-schedule-scraper/test/testutil"
)

func TestConcurrent_SessionsAreIsolated(t *testing.T) {
	const (
		crews      = 4
		iterations = 5
	)

	portal := mock.NewPortal()
	for i := 0; i < crews; i++ {
		id := fmt.Sprintf("crew-%02d", i)
		portal.WithUser(id, "pw-"+id)
		for _, month := range []string{PrevMonth, CurrentMonth, NextMonth} {
			portal.WithSchedule(id, month, fmt.Sprintf(`{"events":[{"flightNumber":"%s/%s"}]}`, id, month))
		}
	}
	portal.WithUser("crew-locked", "right-pw")
	startPortal(t, portal)
	uc := CreateUseCase(portal, UseCaseOptions{})

	type outcome struct {
		id     string
		result *domain.ScrapeResult
		err    error
	}
	results := make(chan outcome, crews*iterations)
	rejected := make(chan error, iterations)

	var wg sync.WaitGroup
	for n := 0; n < iterations; n++ {
		for i := 0; i < crews; i++ {
			wg.Add(1)
			go func(tenant, id string) {
				defer wg.Done()
				result, err := uc.Scrape(context.Background(), testutil.Credentials(tenant, id, "pw-"+id))
				results <- outcome{id: id, result: result, err: err}
			}(fmt.Sprintf("t%02d", i), fmt.Sprintf("crew-%02d", i))
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Scrape(context.Background(), testutil.Credentials("t99", "crew-locked", "wrong-pw"))
			rejected <- err
		}()
	}
	wg.Wait()
	close(results)
	close(rejected)

	for o := range results {
		require.NoError(t, o.err, o.id)
		require.Len(t, o.result.Flights, 3, o.id)
		assert.Equal(t, o.id+"/"+PrevMonth, o.result.Flights[0].FlightNumber)
		assert.Equal(t, o.id+"/"+CurrentMonth, o.result.Flights[1].FlightNumber)
		assert.Equal(t, o.id+"/"+NextMonth, o.result.Flights[2].FlightNumber)
	}
	for err := range rejected {
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	}

	for i := 0; i < crews; i++ {
		id := fmt.Sprintf("crew-%02d", i)
		assert.Len(t, portal.RequestsFor(id), iterations*4, "every request of %s must use its own session", id)
	}
}

func TestConcurrent_FailureDoesNotAffectOthers(t *testing.T) {
	portal := startPortal(t, newPortal(t).WithUser("crew-other", "other-pw"))
	uc := CreateUseCase(portal, UseCaseOptions{})

	var wg sync.WaitGroup
	var good, bad *domain.ScrapeResult
	var badErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		good, _ = uc.Scrape(context.Background(), testutil.Credentials("ual", userID, password))
	}()
	go func() {
		defer wg.Done()
		bad, badErr = uc.Scrape(context.Background(), testutil.Credentials("ual", "crew-other", "wrong"))
	}()
	wg.Wait()

	assert.True(t, good.Success)
	assert.Len(t, good.Flights, 6)
	assert.False(t, bad.Success)
	assert.ErrorIs(t, badErr, domain.ErrAuthentication)
}
