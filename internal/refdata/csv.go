package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ContextHeader is the CSV header for contexts.csv.
const ContextHeader = "portfolio,location_account,base_currency,feed_currency,treatment"

// IdentifierHeader is the CSV header for identifiers.csv.
const IdentifierHeader = "portfolio,id_type,id_value,investment,name"

const (
	ctxNumFields    = 5
	ctxColPortfolio = 0
	ctxColLocation  = 1
	ctxColBaseCcy   = 2
	ctxColFeedCcy   = 3
	ctxColTreatment = 4

	idNumFields     = 5
	idColPortfolio  = 0
	idColType       = 1
	idColValue      = 2
	idColInvestment = 3
	idColName       = 4
)

// ReadContexts reads account contexts from a contexts.csv reader.
func ReadContexts(r io.Reader) ([]AccountContext, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = ctxNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading contexts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var contexts []AccountContext
	for i, rec := range records[1:] {
		ctx, err := unmarshalContext(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		contexts = append(contexts, ctx)
	}
	return contexts, nil
}

func unmarshalContext(rec []string) (AccountContext, error) {
	portfolio := strings.TrimSpace(rec[ctxColPortfolio])
	if portfolio == "" {
		return AccountContext{}, fmt.Errorf("empty portfolio code")
	}

	treatment := Treatment(strings.TrimSpace(rec[ctxColTreatment]))
	switch treatment {
	case TreatmentHTM, TreatmentTrading:
	default:
		return AccountContext{}, fmt.Errorf("unknown accounting treatment %q", rec[ctxColTreatment])
	}

	return AccountContext{
		Portfolio:       portfolio,
		LocationAccount: strings.TrimSpace(rec[ctxColLocation]),
		BaseCurrency:    strings.TrimSpace(rec[ctxColBaseCcy]),
		FeedCurrency:    strings.TrimSpace(rec[ctxColFeedCcy]),
		Treatment:       treatment,
	}, nil
}

// ReadIdentifiers reads identifier mappings from an identifiers.csv reader.
func ReadIdentifiers(r io.Reader) ([]IdentifierRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = idNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading identifiers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var ids []IdentifierRecord
	for i, rec := range records[1:] {
		id, err := unmarshalIdentifier(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func unmarshalIdentifier(rec []string) (IdentifierRecord, error) {
	idType := IDType(strings.TrimSpace(rec[idColType]))
	switch idType {
	case IDISIN, IDSEDOL, IDCUSIP, IDTicker:
	default:
		return IdentifierRecord{}, fmt.Errorf("unknown identifier type %q", rec[idColType])
	}

	value := strings.TrimSpace(rec[idColValue])
	investment := strings.TrimSpace(rec[idColInvestment])
	if value == "" || investment == "" {
		return IdentifierRecord{}, fmt.Errorf("identifier value and investment are required")
	}

	return IdentifierRecord{
		Portfolio:  strings.TrimSpace(rec[idColPortfolio]),
		Type:       idType,
		Value:      value,
		Investment: investment,
		Name:       strings.TrimSpace(rec[idColName]),
	}, nil
}
