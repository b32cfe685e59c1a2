package analysis

import "github.com/Veraticus/bureau-dispute-flow/internal/model"

func transUnionReport() map[string]any {
	return map[string]any{
		"tradelines": []any{
			map[string]any{
				"creditorName":      "CAP ONE",
				"accountIdentifier": "...-4432",
				"accountStatus":     "Charge-Off",
				"balance":           "1250",
				"pastDueAmount":     "0",
			},
		},
	}
}

func experianReport() map[string]any {
	return map[string]any{
		"tradelines": []any{
			map[string]any{
				"creditorName":      "Capital One",
				"accountIdentifier": "XXXX4432",
				"accountStatus":     "Current",
				"balance":           "1,250",
			},
		},
	}
}

func equifaxReport() map[string]any {
	return map[string]any{
		"tradelines": []any{
			map[string]any{
				"creditorName":      "MIDLAND CREDIT",
				"accountIdentifier": "88120091",
				"accountStatus":     "Collection",
				"balance":           "880",
				"late30":            "2",
			},
		},
	}
}

func fullReportSet() model.ReportSet {
	return model.ReportSet{
		model.TransUnion: transUnionReport(),
		model.Experian:   experianReport(),
		model.Equifax:    equifaxReport(),
	}
}
