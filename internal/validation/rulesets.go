package validation

import "regexp"

// Rule set names, keyed per logical operation. Create and update shapes
// share checks but differ in which fields are required.
const (
	UserRegister       = "user.register"
	UserLogin          = "user.login"
	UserUpdate         = "user.update"
	UserChangePassword = "user.change_password"
	ProductCreate      = "product.create"
	ProductUpdate      = "product.update"
	CategoryCreate     = "category.create"
	CategoryUpdate     = "category.update"
	ReviewCreate       = "review.create"
	ReviewUpdate       = "review.update"
	RoleCreate         = "role.create"
	RoleUpdate         = "role.update"
	ListQuery          = "list.query"
)

// Pagination bounds applied by the list.query rule set.
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// MsgPasswordsMustMatch is the dedicated message for the
// confirm_password/new_password equality rule.
const MsgPasswordsMustMatch = "Passwords must match"

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{10,20}$`)

var registry = map[string]*RuleSet{}

func register(rs *RuleSet) *RuleSet {
	registry[rs.Name] = rs
	return rs
}

// Get returns the rule set registered under name.
func Get(name string) (*RuleSet, bool) {
	rs, ok := registry[name]
	return rs, ok
}

func passwordsMatch(payload map[string]interface{}) bool {
	np, _ := payload["new_password"].(string)
	cp, _ := payload["confirm_password"].(string)
	return np == cp
}

var _ = register(&RuleSet{
	Name: UserRegister,
	Fields: []Field{
		{Name: "email", Kind: String, Required: true, Checks: []Check{Email(), MaxLen(255)}},
		{Name: "password", Kind: String, Required: true, Checks: []Check{MinLen(6)}},
		{Name: "full_name", Kind: String, Required: true, Checks: []Check{MinLen(2), MaxLen(255)}},
		{Name: "phone", Kind: String, Checks: []Check{Pattern(phonePattern, "Must be a valid phone number")}},
		{Name: "address", Kind: String, Checks: []Check{MaxLen(500)}},
		{Name: "role_id", Kind: Int, Checks: []Check{Positive()}},
	},
})

var _ = register(&RuleSet{
	Name: UserLogin,
	Fields: []Field{
		{Name: "email", Kind: String, Required: true, Checks: []Check{Email()}},
		{Name: "password", Kind: String, Required: true},
	},
})

var _ = register(&RuleSet{
	Name: UserUpdate,
	Fields: []Field{
		{Name: "email", Kind: String, Checks: []Check{Email(), MaxLen(255)}},
		{Name: "full_name", Kind: String, Checks: []Check{MinLen(2), MaxLen(255)}},
		{Name: "phone", Kind: String, Checks: []Check{Pattern(phonePattern, "Must be a valid phone number")}},
		{Name: "address", Kind: String, Checks: []Check{MaxLen(500)}},
		{Name: "role_id", Kind: Int, Checks: []Check{Positive()}},
	},
})

var _ = register(&RuleSet{
	Name: UserChangePassword,
	Fields: []Field{
		{Name: "new_password", Kind: String, Required: true, Checks: []Check{MinLen(6)}},
		{Name: "confirm_password", Kind: String, Required: true},
	},
	Cross: []CrossCheck{
		{Field: "confirm_password", Message: MsgPasswordsMustMatch, Fn: passwordsMatch},
	},
})

func productFields(required bool) []Field {
	return []Field{
		{Name: "name", Kind: String, Required: required, Checks: []Check{MinLen(2), MaxLen(255)}},
		{Name: "description", Kind: String},
		{Name: "short_description", Kind: String, Checks: []Check{MaxLen(500)}},
		{Name: "price", Kind: Float, Required: required, Checks: []Check{Positive()}},
		{Name: "sale_price", Kind: Float, Checks: []Check{Positive()}},
		{Name: "sku", Kind: String, Checks: []Check{MaxLen(100)}},
		{Name: "stock_quantity", Kind: Int, Checks: []Check{NonNegative()}},
		{Name: "category_id", Kind: Int, Required: required, Checks: []Check{Positive()}},
		{Name: "featured_image", Kind: String, Checks: []Check{URI()}},
		{Name: "gallery", Kind: StringSlice, ElemChecks: []Check{URI()}},
		{Name: "status", Kind: String, Checks: []Check{OneOfFold("active", "inactive", "draft")}},
		{Name: "is_featured", Kind: Bool},
		{Name: "meta_title", Kind: String, Checks: []Check{MaxLen(255)}},
		{Name: "meta_description", Kind: String, Checks: []Check{MaxLen(500)}},
	}
}

// withDefaults sets create-time defaults on the named fields.
func withDefaults(fields []Field, defaults map[string]interface{}) []Field {
	for i := range fields {
		if d, ok := defaults[fields[i].Name]; ok {
			fields[i].Default = d
		}
	}
	return fields
}

var _ = register(&RuleSet{
	Name: ProductCreate,
	Fields: withDefaults(productFields(true), map[string]interface{}{
		"stock_quantity": 0,
		"status":         "active",
		"is_featured":    false,
	}),
})

// Update payloads are partial: every field optional, no defaults so that
// omitted fields stay untouched.
var _ = register(&RuleSet{
	Name:   ProductUpdate,
	Fields: productFields(false),
})

func categoryFields(required bool) []Field {
	return []Field{
		{Name: "name", Kind: String, Required: required, Checks: []Check{MinLen(2), MaxLen(255)}},
		{Name: "description", Kind: String},
		{Name: "image", Kind: String, Checks: []Check{URI()}},
		{Name: "parent_id", Kind: Int, Checks: []Check{Positive()}},
		{Name: "sort_order", Kind: Int, Checks: []Check{NonNegative()}},
		{Name: "is_active", Kind: Bool},
	}
}

var _ = register(&RuleSet{
	Name: CategoryCreate,
	Fields: withDefaults(categoryFields(true), map[string]interface{}{
		"sort_order": 0,
		"is_active":  true,
	}),
})

var _ = register(&RuleSet{
	Name:   CategoryUpdate,
	Fields: categoryFields(false),
})

func reviewFields(required bool) []Field {
	return []Field{
		{Name: "product_id", Kind: Int, Required: required, Checks: []Check{Positive()}},
		{Name: "rating", Kind: Int, Required: required, Checks: []Check{Min(1), Max(5)}},
		{Name: "title", Kind: String, Checks: []Check{MaxLen(255)}},
		{Name: "comment", Kind: String, Checks: []Check{MaxLen(1000)}},
	}
}

var _ = register(&RuleSet{
	Name:   ReviewCreate,
	Fields: reviewFields(true),
})

var _ = register(&RuleSet{
	Name:   ReviewUpdate,
	Fields: reviewFields(false),
})

func roleFields(required bool) []Field {
	return []Field{
		{Name: "name", Kind: String, Required: required, Checks: []Check{MinLen(2), MaxLen(50)}},
		{Name: "description", Kind: String, Checks: []Check{MaxLen(255)}},
	}
}

var _ = register(&RuleSet{
	Name:   RoleCreate,
	Fields: roleFields(true),
})

var _ = register(&RuleSet{
	Name:   RoleUpdate,
	Fields: roleFields(false),
})

var _ = register(&RuleSet{
	Name: ListQuery,
	Fields: []Field{
		{Name: "page", Kind: Int, Default: DefaultPage, Checks: []Check{Min(1)}},
		{Name: "limit", Kind: Int, Default: DefaultLimit, Checks: []Check{Min(1), Max(MaxLimit)}},
		{Name: "sort_by", Kind: String, Checks: []Check{OneOfFold("name", "price", "created_at", "stock_quantity")}},
		{Name: "sort_order", Kind: String, Default: "DESC", Checks: []Check{OneOfFold("ASC", "DESC")}},
		{Name: "category_id", Kind: Int, Checks: []Check{Positive()}},
		{Name: "status", Kind: String, Checks: []Check{OneOfFold("active", "inactive", "draft")}},
		{Name: "search", Kind: String, Checks: []Check{MaxLen(255)}},
	},
})
