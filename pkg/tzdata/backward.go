package tzdata

import "sync"

// backwardNames are zone names kept in the tz database only for backward
// compatibility. Calendar clients still emit them.
var backwardNames = []string{
	"Africa/Asmera", "Africa/Timbuktu",
	"America/Argentina/ComodRivadavia", "America/Atka", "America/Buenos_Aires",
	"America/Catamarca", "America/Coral_Harbour", "America/Cordoba",
	"America/Ensenada", "America/Fort_Wayne", "America/Godthab",
	"America/Indianapolis", "America/Jujuy", "America/Knox_IN",
	"America/Louisville", "America/Mendoza", "America/Montreal",
	"America/Porto_Acre", "America/Rosario", "America/Santa_Isabel",
	"America/Shiprock", "America/Virgin",
	"Antarctica/South_Pole",
	"Asia/Ashkhabad", "Asia/Calcutta", "Asia/Chongqing", "Asia/Chungking",
	"Asia/Dacca", "Asia/Harbin", "Asia/Istanbul", "Asia/Kashgar",
	"Asia/Katmandu", "Asia/Macao", "Asia/Rangoon", "Asia/Saigon",
	"Asia/Tel_Aviv", "Asia/Thimbu", "Asia/Ujung_Pandang", "Asia/Ulan_Bator",
	"Atlantic/Faeroe", "Atlantic/Jan_Mayen",
	"Australia/ACT", "Australia/Canberra", "Australia/LHI", "Australia/NSW",
	"Australia/North", "Australia/Queensland", "Australia/South",
	"Australia/Tasmania", "Australia/Victoria", "Australia/West",
	"Australia/Yancowinna",
	"Brazil/Acre", "Brazil/DeNoronha", "Brazil/East", "Brazil/West",
	"Canada/Atlantic", "Canada/Central", "Canada/Eastern", "Canada/Mountain",
	"Canada/Newfoundland", "Canada/Pacific", "Canada/Saskatchewan",
	"Canada/Yukon",
	"CET", "Chile/Continental", "Chile/EasterIsland", "CST6CDT", "Cuba",
	"EET", "Egypt", "Eire", "EST", "EST5EDT",
	"Etc/GMT+0", "Etc/GMT-0", "Etc/GMT0", "Etc/Greenwich", "Etc/UCT",
	"Etc/Universal", "Etc/Zulu",
	"Europe/Belfast", "Europe/Nicosia", "Europe/Tiraspol",
	"GB", "GB-Eire", "GMT+0", "GMT-0", "GMT0", "Greenwich",
	"Hongkong", "HST", "Iceland", "Iran", "Israel", "Jamaica", "Japan",
	"Kwajalein", "Libya", "MET",
	"Mexico/BajaNorte", "Mexico/BajaSur", "Mexico/General",
	"MST", "MST7MDT", "Navajo", "NZ", "NZ-CHAT",
	"Pacific/Johnston", "Pacific/Ponape", "Pacific/Samoa", "Pacific/Truk",
	"Pacific/Yap",
	"Poland", "Portugal", "PRC", "PST8PDT", "ROC", "ROK", "Singapore",
	"Turkey", "UCT", "Universal",
	"US/Alaska", "US/Aleutian", "US/Arizona", "US/Central", "US/East-Indiana",
	"US/Eastern", "US/Hawaii", "US/Indiana-Starke", "US/Michigan",
	"US/Mountain", "US/Pacific", "US/Pacific-New", "US/Samoa",
	"W-SU", "WET", "Zulu",
}

var backwardSet = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{}, len(backwardNames))
	for _, name := range backwardNames {
		set[name] = struct{}{}
	}
	return set
})

// IsBackwardCompatible reports whether name is a backward-compatibility
// alias of the tz database.
func IsBackwardCompatible(name string) bool {
	_, ok := backwardSet()[name]
	return ok
}

// BackwardCompatibleNames returns a copy of the alias list.
func BackwardCompatibleNames() []string {
	out := make([]string, len(backwardNames))
	copy(out, backwardNames)
	return out
}
