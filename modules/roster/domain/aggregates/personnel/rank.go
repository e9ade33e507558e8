package personnel

import "strings"

// Rank is a pay-grade string from the known, rank-ordered vocabulary.
// Unknown ranks are carried as-is (imports must not drop people) but sort
// after every known rank.
type Rank string

const (
	RankPvt      Rank = "PVT"
	RankPFC      Rank = "PFC"
	RankLCpl     Rank = "LCPL"
	RankCpl      Rank = "CPL"
	RankSgt      Rank = "SGT"
	RankSSgt     Rank = "SSGT"
	RankGySgt    Rank = "GYSGT"
	RankMSgt     Rank = "MSGT"
	RankFirstSgt Rank = "1STSGT"
	RankMGySgt   Rank = "MGYSGT"
	RankSgtMaj   Rank = "SGTMAJ"
	RankWO       Rank = "WO"
	RankCWO2     Rank = "CWO2"
	RankCWO3     Rank = "CWO3"
	RankCWO4     Rank = "CWO4"
	RankCWO5     Rank = "CWO5"
	Rank2ndLt    Rank = "2NDLT"
	Rank1stLt    Rank = "1STLT"
	RankCapt     Rank = "CAPT"
	RankMaj      Rank = "MAJ"
	RankLtCol    Rank = "LTCOL"
	RankCol      Rank = "COL"
)

var rankOrder = map[Rank]int{
	RankPvt: 0, RankPFC: 1, RankLCpl: 2, RankCpl: 3, RankSgt: 4,
	RankSSgt: 5, RankGySgt: 6, RankMSgt: 7, RankFirstSgt: 8,
	RankMGySgt: 9, RankSgtMaj: 10,
	RankWO: 11, RankCWO2: 12, RankCWO3: 13, RankCWO4: 14, RankCWO5: 15,
	Rank2ndLt: 16, Rank1stLt: 17, RankCapt: 18, RankMaj: 19,
	RankLtCol: 20, RankCol: 21,
}

func NormalizeRank(s string) Rank {
	return Rank(strings.ToUpper(strings.TrimSpace(s)))
}

func (r Rank) Known() bool {
	_, ok := rankOrder[r]
	return ok
}

// Compare orders ranks by seniority: negative if r is junior to other,
// zero if equal, positive if senior. Unknown ranks sort after known ones,
// then lexically, so orderings stay total and deterministic.
func (r Rank) Compare(other Rank) int {
	ri, rok := rankOrder[r]
	oi, ook := rankOrder[other]
	switch {
	case rok && ook:
		return ri - oi
	case rok:
		return -1
	case ook:
		return 1
	default:
		return strings.Compare(string(r), string(other))
	}
}
