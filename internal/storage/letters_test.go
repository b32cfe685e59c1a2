package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterItems(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	items := []*model.LetterItem{
		{ReportID: "r", ItemID: "experian:a", Bureau: model.Experian, Summary: "MIDLAND - Collection account: Status: Collection", AddedAt: base},
		{ReportID: "r", ItemID: "transunion:b", Bureau: model.TransUnion, Summary: "CAP ONE - Late payment history: 30Days: 2", AddedAt: base.Add(time.Minute)},
		{ReportID: "r", ItemID: "experian:c", Bureau: model.Experian, Summary: "second", AddedAt: base.Add(2 * time.Minute)},
		{ReportID: "other", ItemID: "experian:a", Bureau: model.Experian, Summary: "other report", AddedAt: base},
	}
	for _, item := range items {
		require.NoError(t, store.SaveLetterItem(ctx, item))
	}

	all, err := store.ListLetterItems(ctx, "r", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "experian:a", all[0].ItemID)
	assert.Equal(t, "experian:c", all[1].ItemID)
	assert.Equal(t, "transunion:b", all[2].ItemID)

	experian, err := store.ListLetterItems(ctx, "r", model.Experian)
	require.NoError(t, err)
	assert.Len(t, experian, 2)

	removed, err := store.ClearLetterItems(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	all, err = store.ListLetterItems(ctx, "r", "")
	require.NoError(t, err)
	assert.Empty(t, all)

	other, err := store.ListLetterItems(ctx, "other", "")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestSaveLetterItem_RefreshesSummary(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	item := &model.LetterItem{ReportID: "r", ItemID: "equifax:x", Bureau: model.Equifax, Summary: "old"}
	require.NoError(t, store.SaveLetterItem(ctx, item))
	assert.False(t, item.AddedAt.IsZero())

	item.Summary = "new"
	require.NoError(t, store.SaveLetterItem(ctx, item))

	got, err := store.ListLetterItems(ctx, "r", model.Equifax)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Summary)
}

func TestSaveLetterItem_Validation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.ErrorIs(t, store.SaveLetterItem(ctx, nil), ErrNilParameter)
	require.ErrorIs(t, store.SaveLetterItem(ctx, &model.LetterItem{ItemID: "x", Bureau: model.Experian}), ErrInvalidLetter)
	require.ErrorIs(t, store.SaveLetterItem(ctx, &model.LetterItem{ReportID: "r", Bureau: model.Experian}), ErrInvalidLetter)
	require.ErrorIs(t, store.SaveLetterItem(ctx, &model.LetterItem{ReportID: "r", ItemID: "x", Bureau: "tu"}), model.ErrUnknownBureau)

	_, err := store.ClearLetterItems(ctx, " ")
	require.ErrorIs(t, err, ErrEmptyString)
}
