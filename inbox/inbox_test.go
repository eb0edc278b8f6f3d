package inbox_test

import (
	"testing"
	"time"

	"github.com/cunservicios/portal/inbox"
	"github.com/cunservicios/portal/storage/repofake"
	"github.com/cunservicios/portal/token"
	"github.com/stretchr/testify/require"
)

func TestInbox_Save(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	in := inbox.New(token.NewStore(repofake.NewFakeRepo()), inbox.WithNowFunc(func() time.Time { return now }))

	rec := in.Save("muni-a", inbox.Draft{FileName: "lecturas.pdf", Description: "Lecturas de febrero"})
	require.Equal(t, inbox.SourcePDF, rec.Source)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, now, rec.Date)

	in.Save("muni-a", inbox.Draft{Source: inbox.SourceExcel, FileName: "consumos.csv"})

	list := in.List("muni-a")
	require.Len(t, list, 2)
	require.Equal(t, "consumos.csv", list[0].FileName)
	require.Equal(t, rec, list[1])

	require.Empty(t, in.List("muni-b"))
}

func TestInbox_Cap(t *testing.T) {
	in := inbox.New(token.NewStore(repofake.NewFakeRepo()))
	for i := 0; i < inbox.MaxDrafts+3; i++ {
		in.Save("muni-a", inbox.Draft{Source: inbox.SourceManual})
	}
	require.Len(t, in.List("muni-a"), inbox.MaxDrafts)
}

func TestInbox_StorageUnavailable(t *testing.T) {
	in := inbox.New(token.NewStore(nil))
	rec := in.Save("muni-a", inbox.Draft{FileName: "x.pdf"})
	require.Equal(t, "x.pdf", rec.FileName)
	require.Empty(t, in.List("muni-a"))
}
