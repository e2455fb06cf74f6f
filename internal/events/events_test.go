package events

import "testing"

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		ev   ChangeEvent
		want string
	}{
		{"category created", Created(EntityCategory, nil), "category.created"},
		{"item updated", Updated(EntityItem, nil), "item.updated"},
		{"staff deleted", Deleted(EntityStaff, "staff123456"), "staff.deleted"},
		{"discount created", Created(EntityDiscount, nil), "discount.created"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeletedCarriesIdentifier(t *testing.T) {
	ev := Deleted(EntityOption, "option482913")

	id, ok := ev.Payload.(string)
	if !ok {
		t.Fatalf("deleted payload should be a string, got %T", ev.Payload)
	}
	if id != "option482913" {
		t.Errorf("payload = %q, want %q", id, "option482913")
	}
}
