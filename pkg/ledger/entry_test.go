package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestFormatEntryNumber(t *testing.T) {
	tests := []struct {
		seq      int64
		expected string
	}{
		{1, "JE-000001"},
		{42, "JE-000042"},
		{999999, "JE-999999"},
		{1000000, "JE-1000000"},
	}

	for _, tt := range tests {
		if got := FormatEntryNumber(tt.seq); got != tt.expected {
			t.Errorf("FormatEntryNumber(%d) = %q, expected %q", tt.seq, got, tt.expected)
		}
	}
}

func TestParseEntryNumber(t *testing.T) {
	tests := []struct {
		number  string
		seq     int64
		wantErr bool
	}{
		{"JE-000001", 1, false},
		{"JE-000120", 120, false},
		{"JE-1000000", 1000000, false},
		{"INV-000001", 0, true},
		{"JE-", 0, true},
		{"garbage", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			seq, err := ParseEntryNumber(tt.number)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEntryNumber(%q) expected error, got %d", tt.number, seq)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEntryNumber(%q) returned error: %v", tt.number, err)
			}
			if seq != tt.seq {
				t.Errorf("ParseEntryNumber(%q) = %d, expected %d", tt.number, seq, tt.seq)
			}
		})
	}
}

func TestJournalLineValidate(t *testing.T) {
	tests := []struct {
		name    string
		debit   string
		credit  string
		wantErr bool
	}{
		{"debit only", "100", "0", false},
		{"credit only", "0", "100", false},
		{"both sides set", "100", "100", true},
		{"neither side set", "0", "0", true},
		{"negative debit", "-1", "0", true},
		{"negative credit", "0", "-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := JournalLine{AccountID: "a", Debit: d(tt.debit), Credit: d(tt.credit)}
			err := line.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate() expected error for debit=%s credit=%s", tt.debit, tt.credit)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}
		})
	}
}

func TestJournalEntryValidate(t *testing.T) {
	balanced := JournalEntry{
		Lines: []JournalLine{
			{AccountID: "a", Debit: d("500")},
			{AccountID: "b", Credit: d("500")},
		},
	}
	if err := balanced.Validate(); err != nil {
		t.Fatalf("Validate() returned error for balanced entry: %v", err)
	}

	single := JournalEntry{Lines: []JournalLine{{AccountID: "a", Debit: d("500")}}}
	if err := single.Validate(); err != ErrEmptyEntry {
		t.Errorf("Validate() = %v, expected ErrEmptyEntry for single-line entry", err)
	}

	unbalanced := JournalEntry{
		Lines: []JournalLine{
			{AccountID: "a", Debit: d("500")},
			{AccountID: "b", Credit: d("499.99")},
		},
	}
	if err := unbalanced.Validate(); err != ErrUnbalancedEntry {
		t.Errorf("Validate() = %v, expected ErrUnbalancedEntry", err)
	}

	badLine := JournalEntry{
		Lines: []JournalLine{
			{AccountID: "a", Debit: d("500"), Credit: d("500")},
			{AccountID: "b"},
		},
	}
	if err := badLine.Validate(); err != ErrInvalidLine {
		t.Errorf("Validate() = %v, expected ErrInvalidLine", err)
	}
}

func TestAccountTypeDebitNormal(t *testing.T) {
	tests := []struct {
		typ         AccountType
		debitNormal bool
	}{
		{AccountAsset, true},
		{AccountExpense, true},
		{AccountLiability, false},
		{AccountEquity, false},
		{AccountRevenue, false},
	}

	for _, tt := range tests {
		if got := tt.typ.DebitNormal(); got != tt.debitNormal {
			t.Errorf("%s.DebitNormal() = %v, expected %v", tt.typ, got, tt.debitNormal)
		}
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"2024-01-10", true},
		{"2024-12-31", true},
		{"2024-13-01", false},
		{"10-01-2024", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidDate(tt.date); got != tt.valid {
			t.Errorf("ValidDate(%q) = %v, expected %v", tt.date, got, tt.valid)
		}
	}
}
