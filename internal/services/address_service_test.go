package services_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/models"
	"pizzeria/internal/services"
	"pizzeria/pkg/geocode"

	"github.com/stretchr/testify/assert"
)

type geoResult struct {
	pos  models.Position
	addr string
	err  error
}

// blockingGeolocator parks every ResolveCurrentAddress call until the test
// releases it, so tests control exactly when each attempt completes.
type blockingGeolocator struct {
	started chan chan geoResult
}

func newBlockingGeolocator() *blockingGeolocator {
	return &blockingGeolocator{started: make(chan chan geoResult, 8)}
}

func (g *blockingGeolocator) ResolveCurrentAddress(ctx context.Context) (models.Position, string, error) {
	release := make(chan geoResult)
	g.started <- release
	r := <-release
	return r.pos, r.addr, r.err
}

func awaitStatus(t *testing.T, svc *services.AddressService, want models.AddressStatus) models.UserAddressState {
	t.Helper()
	assert.Eventually(t, func() bool {
		return svc.State().Status == want
	}, time.Second, 5*time.Millisecond)
	return svc.State()
}

func TestAddressService_StartsIdle(t *testing.T) {
	svc := services.NewAddressService(newBlockingGeolocator())

	state := svc.State()
	assert.Equal(t, models.AddressIdle, state.Status)
	assert.Nil(t, state.Position)
	assert.Empty(t, state.Address)
}

func TestAddressService_SuccessfulAcquisition(t *testing.T) {
	geo := newBlockingGeolocator()
	svc := services.NewAddressService(geo)

	svc.RequestAddress()
	release := <-geo.started
	assert.Equal(t, models.AddressLoading, svc.State().Status)

	release <- geoResult{
		pos:  models.Position{Latitude: 40.71, Longitude: -74.0},
		addr: "Manhattan, New York 10001, United States of America",
	}

	state := awaitStatus(t, svc, models.AddressReady)
	assert.Equal(t, 40.71, state.Position.Latitude)
	assert.Equal(t, "Manhattan, New York 10001, United States of America", state.Address)
	assert.Empty(t, state.Error)
}

func TestAddressService_FailurePreservesPreviousAddress(t *testing.T) {
	geo := newBlockingGeolocator()
	svc := services.NewAddressService(geo)

	svc.RequestAddress()
	(<-geo.started) <- geoResult{
		pos:  models.Position{Latitude: 40.71, Longitude: -74.0},
		addr: "Manhattan, New York 10001, United States of America",
	}
	awaitStatus(t, svc, models.AddressReady)

	// Retry from ready is allowed; this attempt fails.
	svc.RequestAddress()
	(<-geo.started) <- geoResult{err: geocode.ErrPermissionDenied}

	state := awaitStatus(t, svc, models.AddressError)
	assert.Equal(t, "Permission to use your location was denied.", state.Error)
	// The previously resolved address survives the failed retry.
	assert.NotNil(t, state.Position)
	assert.Equal(t, "Manhattan, New York 10001, United States of America", state.Address)
}

func TestAddressService_ErrorMessagesByFailureKind(t *testing.T) {
	geo := newBlockingGeolocator()
	svc := services.NewAddressService(geo)

	svc.RequestAddress()
	(<-geo.started) <- geoResult{err: context.DeadlineExceeded}
	state := awaitStatus(t, svc, models.AddressError)
	assert.Equal(t, "Locating you took too long. Please try again.", state.Error)

	svc.RequestAddress()
	(<-geo.started) <- geoResult{err: geocode.ErrProvider}
	state = awaitStatus(t, svc, models.AddressError)
	assert.Equal(t, "There was a problem getting your address. Make sure to fill this field!", state.Error)
}

func TestAddressService_SupersededAttemptIsDiscarded(t *testing.T) {
	geo := newBlockingGeolocator()
	svc := services.NewAddressService(geo)

	// Two requests in quick succession; the first is still pending.
	svc.RequestAddress()
	first := <-geo.started
	svc.RequestAddress()
	second := <-geo.started

	// The newer attempt completes first.
	second <- geoResult{
		pos:  models.Position{Latitude: 51.5, Longitude: -0.12},
		addr: "Westminster, London SW1A, United Kingdom",
	}
	state := awaitStatus(t, svc, models.AddressReady)
	assert.Equal(t, "Westminster, London SW1A, United Kingdom", state.Address)

	// The stale result lands late and must not be reflected.
	first <- geoResult{
		pos:  models.Position{Latitude: 40.71, Longitude: -74.0},
		addr: "Manhattan, New York 10001, United States of America",
	}
	time.Sleep(50 * time.Millisecond)

	state = svc.State()
	assert.Equal(t, models.AddressReady, state.Status)
	assert.Equal(t, "Westminster, London SW1A, United Kingdom", state.Address)
	assert.Equal(t, 51.5, state.Position.Latitude)
}

func TestAddressService_RequestWhileLoadingRestarts(t *testing.T) {
	geo := newBlockingGeolocator()
	svc := services.NewAddressService(geo)

	svc.RequestAddress()
	first := <-geo.started
	svc.RequestAddress()
	second := <-geo.started

	// Even with the stale result arriving first, only the most recently
	// initiated attempt may update the state.
	first <- geoResult{addr: "stale", pos: models.Position{Latitude: 1}}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, models.AddressLoading, svc.State().Status)

	second <- geoResult{addr: "fresh", pos: models.Position{Latitude: 2}}
	state := awaitStatus(t, svc, models.AddressReady)
	assert.Equal(t, "fresh", state.Address)
	assert.Equal(t, 2.0, state.Position.Latitude)
}

func TestAddressService_SetUsername(t *testing.T) {
	svc := services.NewAddressService(newBlockingGeolocator())

	var notified bool
	svc.Subscribe(func() { notified = true })

	svc.SetUsername("Lee")
	assert.Equal(t, "Lee", svc.State().Username)
	assert.True(t, notified)
}
