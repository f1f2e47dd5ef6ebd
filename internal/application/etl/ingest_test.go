package etl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// TestLoadFromSource_CargaCompleta valida el camino feliz: lote válido,
// reemplazo de las tres tablas y snapshot publicado en la misma corrida.
func TestLoadFromSource_CargaCompleta(t *testing.T) {
	store := newMemStore(
		loc("center_1", "1", true),
		loc("center_2", "1", true),
	)
	src := &memSource{
		donors: []normalize.RawDonor{
			{ID: "D00001", Name: "Ana Ruiz", DOB: "1990-04-12", BloodType: "O-", Contact: "ana@example.com"},
		},
		donations: []normalize.RawDonation{
			{ID: "DN000001", DonorID: "D00001", BloodType: "O-", Component: "plasma",
				DonationDate: "2024-03-01", ExpiryDate: "2025-03-01", Units: "6", QCPass: "true"},
		},
		requests: []normalize.RawRequest{
			{ID: "R00001", Hospital: "Hospital Central", BloodType: "O-", Component: "plasma",
				UnitsRequested: "2", RequestDate: "2024-03-02", Urgency: "urgent",
				Status: "fulfilled", FulfilledDate: "2024-03-03"},
		},
	}
	cache := &memCache{}
	uc := etl.NewIngestUseCase(store.txRunner(), store.locationRepo(), cache)

	res, err := uc.LoadFromSource(context.Background(), src, date("2024-06-01"))
	require.NoError(t, err, "un lote válido no debe fallar")

	assert.Equal(t, 1, res.Donors)
	assert.Equal(t, 1, res.Donations)
	assert.Equal(t, 1, res.Requests)
	assert.Equal(t, "2024-06-01", res.Snapshot.EvaluationDate)
	assert.Empty(t, res.Snapshot.Failures, "con ubicaciones activas no hay fallos de grupo")

	// Neto = 6 vigentes - 2 cumplidas = 4, repartido 2 y 2 entre los centros.
	require.Len(t, store.inventory, 2, "una fila por ubicación activa")
	assert.Equal(t, 4, store.inventory[0].UnitsAvailable+store.inventory[1].UnitsAvailable,
		"la suma de unidades debe conservar el neto")
	assert.Equal(t, 2, store.inventory[0].UnitsAvailable, "pesos iguales reparten parejo")
	assert.Len(t, store.donors, 1, "los donantes del lote deben quedar persistidos")
	assert.Equal(t, 1, cache.invalidations, "una carga exitosa invalida la caché de vistas")
}

// TestLoadFromSource_AbortaPorValidacion valida el contrato todo-o-nada: una
// sola fila inválida aborta la carga completa y no se escribe nada.
func TestLoadFromSource_AbortaPorValidacion(t *testing.T) {
	store := newMemStore(loc("center_1", "1", true))
	src := &memSource{
		donations: []normalize.RawDonation{
			{ID: "DN000001", DonorID: "D00001", BloodType: "O-", Component: "plasma",
				DonationDate: "03/01/2024", ExpiryDate: "2025-03-01", Units: "6", QCPass: "true"},
		},
	}
	cache := &memCache{}
	uc := etl.NewIngestUseCase(store.txRunner(), store.locationRepo(), cache)

	res, err := uc.LoadFromSource(context.Background(), src, date("2024-06-01"))
	require.Error(t, err, "una fecha malformada debe abortar la ingesta")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrValidation, "el error debe ser clasificable como validación")

	var dateErr *domain.MalformedDateError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, normalize.TableDonations, dateErr.Table)
	assert.Equal(t, 1, dateErr.Row)

	assert.Zero(t, store.txRuns, "con lote inválido no debe abrirse ninguna transacción")
	assert.Empty(t, store.donations, "nada del lote inválido debe persistirse")
	assert.Zero(t, cache.invalidations, "una carga abortada no toca la caché")
}

// TestLoadFromSource_ErrorDeFuente propaga los errores de lectura de la fuente.
func TestLoadFromSource_ErrorDeFuente(t *testing.T) {
	store := newMemStore(loc("center_1", "1", true))
	src := &memSource{err: errors.New("archivo truncado")}
	uc := etl.NewIngestUseCase(store.txRunner(), store.locationRepo(), &memCache{})

	_, err := uc.LoadFromSource(context.Background(), src, date("2024-06-01"))
	require.Error(t, err)
	assert.Zero(t, store.txRuns)
}

// TestRecomputeSnapshot_Publica recalcula desde lo persistido y reemplaza el
// snapshot sin tocar las tablas de registros.
func TestRecomputeSnapshot_Publica(t *testing.T) {
	store := newMemStore(loc("center_1", "1", true))
	store.donations = []*entity.Donation{
		donation("DN000001", blood.APos, blood.WholeBlood, "2026-01-01", 5, true),
	}
	cache := &memCache{}
	uc := etl.NewRefreshUseCase(
		store.donationRepo(), store.requestRepo(), store.locationRepo(),
		store.txRunner(), cache,
	)

	res, err := uc.RecomputeSnapshot(context.Background(), date("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsWritten)
	assert.Empty(t, res.Failures)
	require.Len(t, store.inventory, 1)
	assert.Equal(t, 5, store.inventory[0].UnitsAvailable)
	assert.Equal(t, 1, cache.invalidations)
}

// TestRecomputeSnapshot_FalloParcialSinUbicaciones reporta los grupos sin
// ubicación activa como fallos sin abortar la corrida.
func TestRecomputeSnapshot_FalloParcialSinUbicaciones(t *testing.T) {
	store := newMemStore(loc("center_1", "1", false))
	store.donations = []*entity.Donation{
		donation("DN000001", blood.APos, blood.WholeBlood, "2026-01-01", 5, true),
	}
	uc := etl.NewRefreshUseCase(
		store.donationRepo(), store.requestRepo(), store.locationRepo(),
		store.txRunner(), &memCache{},
	)

	res, err := uc.RecomputeSnapshot(context.Background(), date("2024-06-01"))
	require.NoError(t, err, "los fallos de grupo son parciales, no abortan")
	assert.Zero(t, res.RowsWritten)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "A+", res.Failures[0].BloodType)
	assert.Empty(t, store.inventory, "el snapshot queda vacío pero publicado")
}

// ── fakes en memoria ──────────────────────────────────────────────────────────

type memStore struct {
	donors    []*entity.Donor
	donations []*entity.Donation
	requests  []*entity.HospitalRequest
	inventory []*entity.InventoryRow
	locations []*entity.StorageLocation
	txRuns    int
}

func newMemStore(locations ...*entity.StorageLocation) *memStore {
	return &memStore{locations: locations}
}

func (s *memStore) txRunner() etl.TxRunner         { return &memTxRunner{s} }
func (s *memStore) locationRepo() *memLocationRepo { return &memLocationRepo{s} }
func (s *memStore) donationRepo() *memDonationRepo { return &memDonationRepo{s} }
func (s *memStore) requestRepo() *memRequestRepo   { return &memRequestRepo{s} }

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	repository.DonorRepository,
	repository.DonationRepository,
	repository.RequestRepository,
	repository.InventoryRepository,
) error) error {
	t.s.txRuns++
	return fn(&memDonorRepo{t.s}, &memDonationRepo{t.s}, &memRequestRepo{t.s}, &memInventoryRepo{t.s})
}

type memDonorRepo struct{ s *memStore }

func (r *memDonorRepo) ReplaceAll(_ context.Context, d []*entity.Donor) error {
	r.s.donors = d
	return nil
}
func (r *memDonorRepo) List(_ context.Context, _, _ int) ([]*entity.Donor, error) {
	return r.s.donors, nil
}
func (r *memDonorRepo) Count(_ context.Context) (int, error) { return len(r.s.donors), nil }

type memDonationRepo struct{ s *memStore }

func (r *memDonationRepo) ReplaceAll(_ context.Context, d []*entity.Donation) error {
	r.s.donations = d
	return nil
}
func (r *memDonationRepo) ListAll(_ context.Context) ([]*entity.Donation, error) {
	return r.s.donations, nil
}
func (r *memDonationRepo) List(_ context.Context, _ *blood.Type, _, _ int) ([]*entity.Donation, error) {
	return r.s.donations, nil
}
func (r *memDonationRepo) Count(_ context.Context, _ *blood.Type) (int, error) {
	return len(r.s.donations), nil
}

type memRequestRepo struct{ s *memStore }

func (r *memRequestRepo) ReplaceAll(_ context.Context, reqs []*entity.HospitalRequest) error {
	r.s.requests = reqs
	return nil
}
func (r *memRequestRepo) ListAll(_ context.Context) ([]*entity.HospitalRequest, error) {
	return r.s.requests, nil
}
func (r *memRequestRepo) List(_ context.Context, _ *blood.RequestStatus, _ *blood.Urgency, _, _ int) ([]*entity.HospitalRequest, error) {
	return r.s.requests, nil
}
func (r *memRequestRepo) Count(_ context.Context, _ *blood.RequestStatus, _ *blood.Urgency) (int, error) {
	return len(r.s.requests), nil
}

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) ReplaceAll(_ context.Context, rows []*entity.InventoryRow) error {
	r.s.inventory = rows
	return nil
}
func (r *memInventoryRepo) ListAll(_ context.Context) ([]*entity.InventoryRow, error) {
	return r.s.inventory, nil
}
func (r *memInventoryRepo) List(_ context.Context, _ repository.InventoryFilter) ([]*entity.InventoryRow, error) {
	return r.s.inventory, nil
}

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(_ context.Context, l *entity.StorageLocation) error {
	r.s.locations = append(r.s.locations, l)
	return nil
}
func (r *memLocationRepo) GetByID(_ context.Context, id string) (*entity.StorageLocation, error) {
	for _, l := range r.s.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}
func (r *memLocationRepo) Update(_ context.Context, _ *entity.StorageLocation) error { return nil }
func (r *memLocationRepo) List(_ context.Context) ([]*entity.StorageLocation, error) {
	return r.s.locations, nil
}
func (r *memLocationRepo) ListActive(_ context.Context) ([]*entity.StorageLocation, error) {
	var active []*entity.StorageLocation
	for _, l := range r.s.locations {
		if l.Active {
			active = append(active, l)
		}
	}
	return active, nil
}

type memSource struct {
	donors    []normalize.RawDonor
	donations []normalize.RawDonation
	requests  []normalize.RawRequest
	err       error
}

func (s *memSource) Donors() ([]normalize.RawDonor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.donors, nil
}
func (s *memSource) Donations() ([]normalize.RawDonation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.donations, nil
}
func (s *memSource) Requests() ([]normalize.RawRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.requests, nil
}

type memCache struct{ invalidations int }

func (c *memCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (c *memCache) Set(context.Context, string, any) error         { return nil }
func (c *memCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func loc(id, weight string, active bool) *entity.StorageLocation {
	return &entity.StorageLocation{
		ID:     id,
		Name:   id,
		Weight: decimal.RequireFromString(weight),
		Active: active,
	}
}

func donation(id string, bt blood.Type, comp blood.Component, expiry string, units int, qcPass bool) *entity.Donation {
	return &entity.Donation{
		ID:         id,
		DonorID:    "D00001",
		BloodType:  bt,
		Component:  comp,
		ExpiryDate: date(expiry),
		Units:      units,
		QCPass:     qcPass,
	}
}
