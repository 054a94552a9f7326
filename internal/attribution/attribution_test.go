package attribution

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/simpnl/internal/model"
)

func rec(desc string, typ model.TransactionType, price string) model.Record {
	return model.Record{Description: desc, Day: 1, Type: typ, Price: decimal.RequireFromString(price)}
}

func TestWageRule(t *testing.T) {
	r, ok := RuleFor(model.TypeWage)
	require.True(t, ok)

	desc := "Kathleen Hinds (HQ Ray Daily Wage)"
	assert.Equal(t, "Kathleen Hinds", r.Employee(desc))
	assert.Equal(t, "HQ Ray", r.Business(desc))
}

func TestReplacementWageRule(t *testing.T) {
	r, ok := RuleFor(model.TypeReplacementWage)
	require.True(t, ok)

	desc := "Replacement Wage for Ann Lee (HQ Ray Wage)"
	assert.Equal(t, "Ann Lee", r.Employee(desc))
	assert.Equal(t, "HQ Ray", r.Business(desc))
}

func TestExtractBusiness(t *testing.T) {
	tests := []struct {
		rec  model.Record
		want string
	}{
		{rec("Kathleen Hinds (HQ Ray Daily Wage)", model.TypeWage, "-1"), "HQ Ray"},
		{rec("Replacement Wage for Ann Lee (Tech & Gift Wage)", model.TypeReplacementWage, "-1"), "Tech & Gift"},
		{rec("Billboard campaign for Tech & Gift", model.TypeMarketing, "-1"), "Tech & Gift"},
		{rec("Ad for Comfort Store", model.TypeMarketing, "-1"), "Comfort Store"},
		{rec("Tech & Gift delivery from NY Distro", model.TypeDeliveryContract, "-1"), "Tech & Gift"},
		{rec("Tech & Gift Revenue", model.TypeRevenue, "1"), "Tech & Gift"},
		{rec("G&J", model.TypeRevenue, "1"), "G&J"},
		{rec("Rent", model.TypeRent, "-1"), ""},
		{rec("Kathleen Hinds (HQ Ray Weekly Wage)", model.TypeWage, "-1"), ""},
		{rec("Kathleen Hinds Daily Wage", model.TypeWage, "-1"), ""},
		{rec("Billboard campaign", model.TypeMarketing, "-1"), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractBusiness(tt.rec), "ExtractBusiness(%q)", tt.rec.Description)
	}
}

func TestRevenueBusiness(t *testing.T) {
	assert.Equal(t, "McDonald's", RevenueBusiness("McDonald's Revenue"))
	assert.Equal(t, "Revenue Hub", RevenueBusiness("Revenue Hub"))
	assert.Equal(t, "", RevenueBusiness("Revenue"))
	assert.Equal(t, "Shop", RevenueBusiness("  Shop  "))
}

func TestTokenIndex(t *testing.T) {
	assert.Equal(t, 4, tokenIndex("Ads for Shop", "for", false))
	assert.Equal(t, -1, tokenIndex("Comfort", "for", false))
	assert.Equal(t, 12, tokenIndex("for one and for two", "for", true))
	assert.Equal(t, 0, tokenIndex("for", "for", true))
	assert.Equal(t, -1, tokenIndex("", "for", false))
}

func TestBuildDirectory(t *testing.T) {
	records := []model.Record{
		rec("Kathleen Hinds (HQ Ray Daily Wage)", model.TypeWage, "-100"),
		rec("Replacement Wage for Ann Lee (Tech & Gift Wage)", model.TypeReplacementWage, "-50"),
		rec("Kathleen Hinds training", model.TypeHRTraining, "-10"),
		rec("Broken wage line", model.TypeWage, "-5"),
		rec("HQ Ray Revenue", model.TypeRevenue, "500"),
	}

	dir := BuildDirectory(records)
	assert.Equal(t, 2, dir.Len())
	assert.Equal(t, []string{"Ann Lee", "Kathleen Hinds"}, dir.Employees())

	b, ok := dir.Lookup("Kathleen Hinds")
	require.True(t, ok)
	assert.Equal(t, "HQ Ray", b)

	b, ok = dir.Lookup("Ann Lee")
	require.True(t, ok)
	assert.Equal(t, "Tech & Gift", b)

	_, ok = dir.Lookup("Nobody")
	assert.False(t, ok)
	assert.Empty(t, dir.Conflicts())
}

func TestBuildDirectory_LastWriteWinsAndFlags(t *testing.T) {
	first := rec("Sam Smith (HQ Ray Daily Wage)", model.TypeWage, "-100")
	again := rec("Sam Smith (HQ Ray Daily Wage)", model.TypeWage, "-100")
	moved := rec("Sam Smith (Tech & Gift Daily Wage)", model.TypeWage, "-100")
	moved.Day = 7

	dir := BuildDirectory([]model.Record{first, again, moved})

	b, _ := dir.Lookup("Sam Smith")
	assert.Equal(t, "Tech & Gift", b)
	require.Len(t, dir.Conflicts(), 1, "repeating the same business is not a conflict")
	assert.Equal(t, Conflict{Employee: "Sam Smith", Previous: "HQ Ray", Current: "Tech & Gift", Day: 7}, dir.Conflicts()[0])
}

func TestNilDirectory(t *testing.T) {
	var dir *Directory
	_, ok := dir.Lookup("x")
	assert.False(t, ok)
	assert.Zero(t, dir.Len())
	assert.Nil(t, dir.Employees())
	assert.Nil(t, dir.Conflicts())
}

func TestCategorize(t *testing.T) {
	dir := BuildDirectory([]model.Record{
		rec("Kathleen Hinds (HQ Ray Daily Wage)", model.TypeWage, "-100"),
		rec("Joseph Halliday (Tech & Gift Daily Wage)", model.TypeWage, "-100"),
	})
	c := NewCategorizer(dir, DefaultPolicy())

	tests := []struct {
		rec          model.Record
		wantCat      model.Category
		wantBusiness string
	}{
		{rec("HQ Ray Revenue", model.TypeRevenue, "5000"), model.CategoryRevenue, ""},
		{rec("Loan received", model.TypeLoanPayment, "100"), model.CategoryRevenue, ""},
		{rec("Kathleen Hinds (HQ Ray Daily Wage)", model.TypeWage, "-100"), model.CategoryDirectCost, "HQ Ray"},
		{rec("Replacement Wage for Ann Lee (HQ Ray Wage)", model.TypeReplacementWage, "-50"), model.CategoryDirectCost, "HQ Ray"},
		{rec("Billboard campaign for Tech & Gift", model.TypeMarketing, "-100"), model.CategoryDirectCost, "Tech & Gift"},
		{rec("Silver Health Insurance (Joseph Halliday) - 10 Employees", model.TypeHealthInsurance, "-30"), model.CategoryDirectCost, "Tech & Gift"},
		{rec("Kathleen Hinds training", model.TypeHRTraining, "-20"), model.CategoryDirectCost, "HQ Ray"},
		{rec("Gold Health Insurance (Nobody Known) - 1 Employees", model.TypeHealthInsurance, "-10"), model.CategoryPersonal, ""},
		{rec("Tech & Gift delivery from NY Distro", model.TypeDeliveryContract, "-80"), model.CategorySharedRevenueBased, ""},
		{rec("Rent", model.TypeRent, "-520"), model.CategorySharedRevenueBased, ""},
		{rec("Loan Payment", model.TypeLoanPayment, "-10"), model.CategorySharedRevenueBased, ""},
		{rec("Tax Payment", model.TypeTaxPayment, "-200"), model.CategorySharedRevenueBased, ""},
		{rec("Bank Negative Interest Rate", model.TypeBankNegativeRate, "-3"), model.CategorySharedRevenueBased, ""},
		{rec("Item Purchase", model.TypeItemPurchase, "-300"), model.CategorySharedEqualSplit, ""},
		{rec("Import Delivery", model.TypeImportDelivery, "-100"), model.CategorySharedEqualSplit, ""},
		{rec("Interior Designer", model.TypeInteriorDesigner, "-100"), model.CategorySharedEqualSplit, ""},
		{rec("Taxi Ride", model.TransactionType("Taxi Ride"), "-32.5"), model.CategoryPersonal, ""},
		{rec("Refund", model.TypeRevenue, "-5"), model.CategoryPersonal, ""},
		{rec("Nothing", model.TypeRent, "0"), model.CategoryUnknown, ""},
	}
	for _, tt := range tests {
		cat, business := c.Categorize(tt.rec)
		assert.Equal(t, tt.wantCat, cat, "category of %q", tt.rec.Description)
		assert.Equal(t, tt.wantBusiness, business, "business of %q", tt.rec.Description)
	}
}

func TestCategorize_WageWithoutBusinessIsNotResolvedThroughDirectory(t *testing.T) {
	dir := BuildDirectory([]model.Record{rec("Kathleen Hinds (HQ Ray Daily Wage)", model.TypeWage, "-100")})
	c := NewCategorizer(dir, DefaultPolicy())

	r := rec("Kathleen Hinds (HQ Ray Weekly Wage)", model.TypeWage, "-100")
	cat, business := c.Categorize(r)
	assert.Equal(t, model.CategoryPersonal, cat)
	assert.Empty(t, business)
	assert.True(t, AttributionGap(r, cat))
}

func TestAttributionGap(t *testing.T) {
	assert.True(t, AttributionGap(rec("x", model.TypeHealthInsurance, "-1"), model.CategoryPersonal))
	assert.True(t, AttributionGap(rec("x", model.TypeMarketing, "-1"), model.CategoryPersonal))
	assert.False(t, AttributionGap(rec("x", model.TypeMarketing, "-1"), model.CategoryDirectCost))
	assert.False(t, AttributionGap(rec("x", model.TypeDeliveryContract, "-1"), model.CategorySharedRevenueBased))
	assert.False(t, AttributionGap(rec("x", model.TypeRent, "-1"), model.CategorySharedRevenueBased))
	assert.False(t, AttributionGap(rec("x", model.TypeMarketing, "1"), model.CategoryRevenue))
}

func TestNewPolicy_Overlap(t *testing.T) {
	_, err := NewPolicy([]string{"Rent"}, []string{"Rent"})
	assert.Error(t, err)
}

func TestCustomPolicy(t *testing.T) {
	p, err := NewPolicy([]string{"Rent"}, []string{"Delivery Contract"})
	require.NoError(t, err)
	c := NewCategorizer(nil, p)

	cat, _ := c.Categorize(rec("Shop delivery from X", model.TypeDeliveryContract, "-10"))
	assert.Equal(t, model.CategorySharedEqualSplit, cat)

	cat, _ = c.Categorize(rec("Tax Payment", model.TypeTaxPayment, "-10"))
	assert.Equal(t, model.CategoryPersonal, cat)
}

func TestCostBucketString(t *testing.T) {
	assert.Equal(t, "wages", BucketWages.String())
	assert.Equal(t, "hr_training", BucketHRTraining.String())
	assert.Equal(t, "none", BucketNone.String())
}
