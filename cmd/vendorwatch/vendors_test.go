package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steinunnb/vendorwatch/internal/common"
	"github.com/steinunnb/vendorwatch/internal/model"
	"github.com/steinunnb/vendorwatch/internal/payday"
)

type fakeDirectory struct {
	vendors []model.Vendor
	loadErr error
	saves   int
}

func (f *fakeDirectory) SaveVendors(_ context.Context, vendors []model.Vendor) error {
	f.vendors = vendors
	f.saves++
	return nil
}

func (f *fakeDirectory) LoadVendors(_ context.Context) ([]model.Vendor, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.vendors, nil
}

func TestFetchVendors_RefreshesDirectory(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return []model.Vendor{{ID: "v1", Name: "Alpha ehf."}}, nil
	}
	dir := &fakeDirectory{}

	vendors, err := fetchVendors(context.Background(), client, dir)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, 1, dir.saves)
	assert.Equal(t, vendors, dir.vendors)
}

func TestFetchVendors_FallsBackToDirectory(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return nil, common.ErrAPIUnavailable
	}
	dir := &fakeDirectory{vendors: []model.Vendor{{ID: "v1", Name: "Alpha ehf."}}}

	vendors, err := fetchVendors(context.Background(), client, dir)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Alpha ehf.", vendors[0].Name)
	assert.Zero(t, dir.saves)
}

func TestFetchVendors_EmptyDirectoryReturnsAPIError(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return nil, common.ErrAPIUnavailable
	}
	dir := &fakeDirectory{loadErr: common.ErrCacheMiss}

	_, err := fetchVendors(context.Background(), client, dir)
	assert.ErrorIs(t, err, common.ErrAPIUnavailable)
}

func TestFetchVendors_NoDirectory(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return nil, errors.New("api down")
	}

	_, err := fetchVendors(context.Background(), client, nil)
	assert.Error(t, err)
}

func TestFindVendors_Online(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return []model.Vendor{
			{ID: "v1", Name: "BAUHAUS slhf."},
			{ID: "v2", Name: "Atlantsolia ehf."},
		}, nil
	}

	hits, err := findVendors(context.Background(), client, nil, "bauhaus")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "v1", hits[0].ID)
}

func TestFindVendors_FallsBackToDirectory(t *testing.T) {
	client := payday.NewMockClient()
	client.FindVendorsFn = func(_ context.Context, _ string) ([]model.Vendor, error) {
		return nil, common.ErrAPIUnavailable
	}
	dir := &fakeDirectory{vendors: []model.Vendor{
		{ID: "v1", Name: "BAUHAUS slhf."},
		{ID: "v2", Name: "Atlantsolia ehf."},
	}}

	hits, err := findVendors(context.Background(), client, dir, "atlant")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "v2", hits[0].ID)
}
