package domain

// IssueCategories is the fixed categorization taxonomy enforced when the
// service runs with taxonomy enforcement enabled. Without enforcement both
// category fields are freeform.
var IssueCategories = map[string][]string{
	"Hardware": {"Laptop Issue", "Monitor", "Keyboard/Mouse", "Printer", "Other"},
	"Software": {"OS Issue", "Application Error", "Installation", "Update", "Other"},
	"Network":  {"Internet", "VPN", "Wi-Fi", "LAN", "Other"},
	"Access":   {"Password Reset", "Account Unlock", "Permission Request", "New Account", "Other"},
}

// ValidCategory reports whether the category and sub-category pair is part of
// the taxonomy. An empty sub-category is accepted for any known category.
func ValidCategory(category, subCategory string) bool {
	subs, ok := IssueCategories[category]
	if !ok {
		return false
	}
	if subCategory == "" {
		return true
	}
	for _, sub := range subs {
		if sub == subCategory {
			return true
		}
	}
	return false
}
