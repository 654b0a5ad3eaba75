package customers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

type memoryCustomerRepo struct {
	customers map[int64]*Customer
	nextID    int64
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{customers: make(map[int64]*Customer)}
}

func (r *memoryCustomerRepo) Get(ctx context.Context, id int64) (*Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memoryCustomerRepo) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var out []Customer
	for _, c := range r.customers {
		if req.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *memoryCustomerRepo) Create(ctx context.Context, c Customer) (int64, error) {
	for _, existing := range r.customers {
		if c.GSTIN != nil && existing.GSTIN != nil && *c.GSTIN == *existing.GSTIN {
			return 0, shared.ErrDuplicate
		}
	}
	r.nextID++
	c.ID = r.nextID
	r.customers[c.ID] = &c
	return c.ID, nil
}

func (r *memoryCustomerRepo) Update(ctx context.Context, c Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return shared.ErrNotFound
	}
	r.customers[c.ID] = &c
	return nil
}

func (r *memoryCustomerRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func TestCreateAndGetCustomer(t *testing.T) {
	svc := NewService(newMemoryCustomerRepo())

	created, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name:  "Sharma Traders",
		State: "Karnataka",
	})
	require.NoError(t, err)
	require.Equal(t, "Sharma Traders", created.Name)
	require.Equal(t, "Karnataka", created.State)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestUpdateCustomerPartialFields(t *testing.T) {
	svc := NewService(newMemoryCustomerRepo())
	created, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "Old Name", State: "Karnataka"})
	require.NoError(t, err)

	newState := "Kerala"
	updated, err := svc.Update(context.Background(), created.ID, UpdateCustomerRequest{State: &newState})
	require.NoError(t, err)
	require.Equal(t, "Old Name", updated.Name)
	require.Equal(t, "Kerala", updated.State)
}

func TestUpdateMissingCustomer(t *testing.T) {
	svc := NewService(newMemoryCustomerRepo())
	name := "x"
	_, err := svc.Update(context.Background(), 99, UpdateCustomerRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateDuplicateGSTIN(t *testing.T) {
	svc := NewService(newMemoryCustomerRepo())

	gstin := "29ABCDE1234F1Z5"
	_, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "Sharma Traders", GSTIN: &gstin})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCustomerRequest{Name: "Sharma Trading Co", GSTIN: &gstin})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestListClampsLimit(t *testing.T) {
	repo := newMemoryCustomerRepo()
	svc := NewService(repo)
	_, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "A"})
	require.NoError(t, err)

	list, page, err := svc.List(context.Background(), ListCustomersRequest{Limit: -5})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, 50, page.PerPage)
	require.Equal(t, 1, page.Page)
	require.Len(t, list, 1)
}
