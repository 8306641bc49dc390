package bronze

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestLoader(t *testing.T, dir string) *Loader {
	t.Helper()
	l, err := NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "AdventureWorks_Customers.csv",
		"CustomerKey,FirstName,LastName\n11000,Jon,Yang\n11001,Eugene,Huang\n")

	l := newTestLoader(t, dir)
	table, err := l.Load("AdventureWorks_Customers")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if got := table.Field(table.Rows[1], "FirstName"); got != "Eugene" {
		t.Errorf("expected FirstName Eugene, got %q", got)
	}
	if table.Field(table.Rows[0], "NoSuchColumn") != "" {
		t.Error("expected empty string for unknown column")
	}
	if !table.HasColumn("LastName") || table.HasColumn("Email") {
		t.Error("HasColumn mismatch")
	}
}

func TestLoadZstdVariant(t *testing.T) {
	content := "ProductKey,ProductName\n214,Sport-100 Helmet\n"

	plain := t.TempDir()
	writeSource(t, plain, "AdventureWorks_Products.csv", content)

	compressed := t.TempDir()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	data := enc.EncodeAll([]byte(content), nil)
	enc.Close()
	if err := os.WriteFile(filepath.Join(compressed, "AdventureWorks_Products.csv.zst"), data, 0644); err != nil {
		t.Fatal(err)
	}

	fromPlain, err := newTestLoader(t, plain).Load("AdventureWorks_Products")
	if err != nil {
		t.Fatalf("load plain: %v", err)
	}
	fromZst, err := newTestLoader(t, compressed).Load("AdventureWorks_Products")
	if err != nil {
		t.Fatalf("load zst: %v", err)
	}

	if fromPlain.Len() != fromZst.Len() {
		t.Fatalf("row count mismatch: plain %d, zst %d", fromPlain.Len(), fromZst.Len())
	}
	for i := range fromPlain.Rows {
		for j := range fromPlain.Rows[i] {
			if fromPlain.Rows[i][j] != fromZst.Rows[i][j] {
				t.Errorf("row %d field %d: %q != %q", i, j, fromPlain.Rows[i][j], fromZst.Rows[i][j])
			}
		}
	}
}

func TestLoadLatin1(t *testing.T) {
	dir := t.TempDir()
	// "José" in Latin-1: 0xE9 for é
	writeSource(t, dir, "AdventureWorks_Customers.csv",
		"CustomerKey,FirstName\n11002,Jos\xe9\n")

	table, err := newTestLoader(t, dir).Load("AdventureWorks_Customers")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := table.Field(table.Rows[0], "FirstName"); got != "José" {
		t.Errorf("expected José, got %q", got)
	}
}

func TestLoadMissingSource(t *testing.T) {
	_, err := newTestLoader(t, t.TempDir()).Load("AdventureWorks_Calendar")
	var notFound *SourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SourceNotFoundError, got %v", err)
	}
	if notFound.Source != "AdventureWorks_Calendar" {
		t.Errorf("unexpected source in error: %q", notFound.Source)
	}
}

func TestLoadSalesMergesYears(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "AdventureWorks_Sales_2016.csv",
		"OrderNumber,ProductKey\nSO1,214\nSO2,215\n")
	// 2017 has its columns in a different order; merge is by name.
	writeSource(t, dir, "AdventureWorks_Sales_2017.csv",
		"ProductKey,OrderNumber\n216,SO3\n")

	table, err := newTestLoader(t, dir).LoadSales([]int{2016, 2017}, false)
	if err != nil {
		t.Fatalf("LoadSales failed: %v", err)
	}

	if table.Source != "AdventureWorks_Sales" {
		t.Errorf("expected merged source name, got %q", table.Source)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 merged rows, got %d", table.Len())
	}
	if got := table.Field(table.Rows[2], "OrderNumber"); got != "SO3" {
		t.Errorf("expected remapped OrderNumber SO3, got %q", got)
	}
	if got := table.Field(table.Rows[2], "ProductKey"); got != "216" {
		t.Errorf("expected remapped ProductKey 216, got %q", got)
	}
}

func TestLoadSalesMissingYearPolicies(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "AdventureWorks_Sales_2016.csv",
		"OrderNumber,ProductKey\nSO1,214\n")

	table, err := newTestLoader(t, dir).LoadSales([]int{2015, 2016}, false)
	if err != nil {
		t.Fatalf("warn policy should skip missing year: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 row from the present year, got %d", table.Len())
	}

	_, err = newTestLoader(t, dir).LoadSales([]int{2015, 2016}, true)
	var notFound *SourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("fail policy should report missing year, got %v", err)
	}
}

func TestLoadSalesAllMissing(t *testing.T) {
	_, err := newTestLoader(t, t.TempDir()).LoadSales([]int{2015, 2016}, false)
	var notFound *SourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SourceNotFoundError when no sales files exist, got %v", err)
	}
}
