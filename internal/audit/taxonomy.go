package audit

// Known action kinds. The set grows as the console grows; nothing in this
// package may treat an unlisted kind as an error.
const (
	KindCreatedProduct = "Created product"
	KindUpdatedProduct = "Updated product"
	KindDeletedProduct = "Deleted product"

	KindCreatedCategory    = "Created category"
	KindUpdatedCategory    = "Updated category"
	KindDeletedCategory    = "Deleted category"
	KindToggledCategory    = "Toggled category status"
	KindCreatedSubCategory = "Created subcategory"
	KindUpdatedSubCategory = "Updated subcategory"
	KindDeletedSubCategory = "Deleted subcategory"
	KindCreatedBrand       = "Created brand"
	KindUpdatedBrand       = "Updated brand"
	KindDeletedBrand       = "Deleted brand"
	KindCreatedDiscount    = "Created discount"
	KindUpdatedDiscount    = "Updated discount"
	KindDeletedDiscount    = "Deleted discount"
	KindCreatedCustomer    = "Created customer"
	KindUpdatedCustomer    = "Updated customer"
	KindDeletedCustomer    = "Deleted customer"

	KindLoggedIn     = "Logged In"
	KindAddedNewUser = "Added new user"

	KindCreatedNotification = "Created notification"
	KindUpdatedNotification = "Updated notification"
	KindDeletedNotification = "Deleted notification"
)

// titles maps a kind to the heading the viewer shows for its change section.
// Unknown kinds fall back to the literal kind string.
var titles = map[string]string{
	KindCreatedProduct: "Product Details",
	KindUpdatedProduct: "Updated Product Details",
	KindDeletedProduct: "Deleted Product Details",

	KindCreatedCategory:    "Category Details",
	KindUpdatedCategory:    "Updated Category Details",
	KindDeletedCategory:    "Deleted Category Details",
	KindToggledCategory:    "Category Status Change",
	KindCreatedSubCategory: "Sub-Category Details",
	KindUpdatedSubCategory: "Updated Sub-Category Details",
	KindDeletedSubCategory: "Deleted Sub-Category Details",
	KindCreatedBrand:       "Brand Details",
	KindUpdatedBrand:       "Updated Brand Details",
	KindDeletedBrand:       "Deleted Brand Details",
	KindCreatedDiscount:    "Discount Details",
	KindUpdatedDiscount:    "Updated Discount Details",
	KindDeletedDiscount:    "Deleted Discount Details",
	KindCreatedCustomer:    "Customer Details",
	KindUpdatedCustomer:    "Updated Customer Details",
	KindDeletedCustomer:    "Deleted Customer Details",

	KindLoggedIn:     "Login Details",
	KindAddedNewUser: "New User Details",

	KindCreatedNotification: "Notification Details",
	KindUpdatedNotification: "Updated Notification Details",
	KindDeletedNotification: "Deleted Notification Details",
}

// TitleFor returns the viewer heading for a kind. Total: unknown kinds get
// their own literal string back.
func TitleFor(kind string) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return kind
}

// BadgeStyle is the background/foreground pair for the action-kind badge.
type BadgeStyle struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

var (
	badgeCreated = BadgeStyle{Background: "#e6f4ea", Foreground: "#1e7e34"}
	badgeUpdated = BadgeStyle{Background: "#e8f0fe", Foreground: "#1a56db"}
	badgeDeleted = BadgeStyle{Background: "#fde8e8", Foreground: "#c81e1e"}
	badgeAuth    = BadgeStyle{Background: "#fdf6b2", Foreground: "#8e4b10"}
	badgeNeutral = BadgeStyle{Background: "#f3f4f6", Foreground: "#374151"}
)

var badges = map[string]BadgeStyle{
	KindCreatedProduct:      badgeCreated,
	KindCreatedCategory:     badgeCreated,
	KindCreatedSubCategory:  badgeCreated,
	KindCreatedBrand:        badgeCreated,
	KindCreatedDiscount:     badgeCreated,
	KindCreatedCustomer:     badgeCreated,
	KindCreatedNotification: badgeCreated,
	KindAddedNewUser:        badgeCreated,

	KindUpdatedProduct:      badgeUpdated,
	KindUpdatedCategory:     badgeUpdated,
	KindToggledCategory:     badgeUpdated,
	KindUpdatedSubCategory:  badgeUpdated,
	KindUpdatedBrand:        badgeUpdated,
	KindUpdatedDiscount:     badgeUpdated,
	KindUpdatedCustomer:     badgeUpdated,
	KindUpdatedNotification: badgeUpdated,

	KindDeletedProduct:      badgeDeleted,
	KindDeletedCategory:     badgeDeleted,
	KindDeletedSubCategory:  badgeDeleted,
	KindDeletedBrand:        badgeDeleted,
	KindDeletedDiscount:     badgeDeleted,
	KindDeletedCustomer:     badgeDeleted,
	KindDeletedNotification: badgeDeleted,

	KindLoggedIn: badgeAuth,
}

// BadgeFor maps a kind to its badge style. Total: unmapped kinds get the
// neutral pair.
func BadgeFor(kind string) BadgeStyle {
	if b, ok := badges[kind]; ok {
		return b
	}
	return badgeNeutral
}
