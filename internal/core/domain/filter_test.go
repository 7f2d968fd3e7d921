package domain

import (
	"reflect"
	"testing"
)

func catalog() []*Product {
	return []*Product{
		product("Red Widget", "Tools", 100, 1),
		product("Hammer", "Tools", 100, 1),
		product("widget toy", "Toys", 100, 1),
		product("Apple", "Food", 100, 1),
		product("Pear", "Food", 100, 1),
	}
}

func names(products []*Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	products := catalog()

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"empty filter is identity", ProductFilter{}, []string{"Red Widget", "Hammer", "widget toy", "Apple", "Pear"}},
		{"search is case insensitive substring", ProductFilter{Search: "WIDGET"}, []string{"Red Widget", "widget toy"}},
		{"category is exact", ProductFilter{Category: "Tools"}, []string{"Red Widget", "Hammer"}},
		{"category does not fold case", ProductFilter{Category: "tools"}, []string{}},
		{"predicates are combined", ProductFilter{Search: "widget", Category: "Toys"}, []string{"widget toy"}},
		{"no match", ProductFilter{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterProducts(products, tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterProducts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterProducts_DoesNotMutateInput(t *testing.T) {
	products := catalog()
	_ = FilterProducts(products, ProductFilter{Category: "Food"})
	if len(products) != 5 || products[0].Name != "Red Widget" {
		t.Fatal("input slice was modified")
	}
}

func TestDistinctCategories(t *testing.T) {
	got := DistinctCategories(catalog())
	want := []string{"Tools", "Toys", "Food"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DistinctCategories() = %v, want %v", got, want)
	}

	if got := DistinctCategories(nil); len(got) != 0 {
		t.Fatalf("expected no categories, got %v", got)
	}
}
