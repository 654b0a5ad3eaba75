package vendors

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

type memoryVendorRepo struct {
	vendors map[int64]*Vendor
	nextID  int64
}

func newMemoryVendorRepo() *memoryVendorRepo {
	return &memoryVendorRepo{vendors: make(map[int64]*Vendor)}
}

func (r *memoryVendorRepo) Get(ctx context.Context, id int64) (*Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *memoryVendorRepo) List(ctx context.Context, req ListVendorsRequest) ([]Vendor, int, error) {
	var out []Vendor
	for _, v := range r.vendors {
		if req.Search != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, *v)
	}
	return out, len(out), nil
}

func (r *memoryVendorRepo) Create(ctx context.Context, v Vendor) (int64, error) {
	r.nextID++
	v.ID = r.nextID
	r.vendors[v.ID] = &v
	return v.ID, nil
}

func (r *memoryVendorRepo) Update(ctx context.Context, v Vendor) error {
	if _, ok := r.vendors[v.ID]; !ok {
		return shared.ErrNotFound
	}
	r.vendors[v.ID] = &v
	return nil
}

func (r *memoryVendorRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.vendors[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.vendors, id)
	return nil
}

func TestCreateAndGetVendor(t *testing.T) {
	svc := NewService(newMemoryVendorRepo())

	created, err := svc.Create(context.Background(), CreateVendorRequest{Name: "Premier Glass Works", State: "Tamil Nadu"})
	require.NoError(t, err)
	require.Equal(t, "Premier Glass Works", created.Name)
	require.Equal(t, "Tamil Nadu", created.State)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
}

func TestUpdateVendorPartialPatch(t *testing.T) {
	svc := NewService(newMemoryVendorRepo())

	created, err := svc.Create(context.Background(), CreateVendorRequest{Name: "Premier Glass Works", State: "Tamil Nadu"})
	require.NoError(t, err)

	state := "Karnataka"
	updated, err := svc.Update(context.Background(), created.ID, UpdateVendorRequest{State: &state})
	require.NoError(t, err)
	require.Equal(t, "Karnataka", updated.State)
	require.Equal(t, "Premier Glass Works", updated.Name)
}

func TestGetMissingVendor(t *testing.T) {
	svc := NewService(newMemoryVendorRepo())

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListVendorsSearch(t *testing.T) {
	svc := NewService(newMemoryVendorRepo())

	_, err := svc.Create(context.Background(), CreateVendorRequest{Name: "Premier Glass Works"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateVendorRequest{Name: "Steel Supplies"})
	require.NoError(t, err)

	vendors, page, err := svc.List(context.Background(), ListVendorsRequest{Search: "glass"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Premier Glass Works", vendors[0].Name)
}
