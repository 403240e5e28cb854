package models

// Group is the billing/organizational cohort a user belongs to.
// The set is fixed; summaries silently drop labels outside it.
type Group string

const (
	GroupAType Group = "A型"
	GroupBType Group = "B型"
	GroupStaff Group = "職員"
	GroupTrial Group = "体験"
)

// AllGroups is the closed set used by validation and group summaries,
// in display order.
var AllGroups = []Group{GroupAType, GroupBType, GroupStaff, GroupTrial}

// DefaultPrices holds the per-meal price (yen) assigned to new users of
// each group. Admins may override per user.
var DefaultPrices = map[Group]int{
	GroupAType: 300,
	GroupBType: 100,
	GroupStaff: 400,
	GroupTrial: 0,
}

// PaidGroups are the groups included in billing extracts. Trial users
// eat free and never appear on an invoice.
var PaidGroups = []Group{GroupAType, GroupBType, GroupStaff}

func IsValidGroup(g string) bool {
	for _, v := range AllGroups {
		if string(v) == g {
			return true
		}
	}
	return false
}

func IsPaidGroup(g string) bool {
	for _, v := range PaidGroups {
		if string(v) == g {
			return true
		}
	}
	return false
}
