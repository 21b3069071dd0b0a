package refdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadContexts(t *testing.T) {
	data := ContextHeader + "\n" +
		"12307,CUST-HK,HKD,HKD,Trading\n" +
		"12734,CUST-BOND,HKD,USD,HTM\n"

	contexts, err := ReadContexts(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, contexts, 2)

	assert.Equal(t, "12307", contexts[0].Portfolio)
	assert.Equal(t, "CUST-HK", contexts[0].LocationAccount)
	assert.Equal(t, TreatmentTrading, contexts[0].Treatment)
	assert.Equal(t, "USD", contexts[1].FeedCurrency)
	assert.Equal(t, TreatmentHTM, contexts[1].Treatment)
}

func TestReadContexts_HeaderOnly(t *testing.T) {
	contexts, err := ReadContexts(strings.NewReader(ContextHeader + "\n"))
	require.NoError(t, err)
	assert.Nil(t, contexts)
}

func TestReadContexts_BadTreatment(t *testing.T) {
	data := ContextHeader + "\n12307,CUST-HK,HKD,HKD,AFS\n"
	_, err := ReadContexts(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "unknown accounting treatment")
}

func TestReadContexts_EmptyPortfolio(t *testing.T) {
	data := ContextHeader + "\n,CUST-HK,HKD,HKD,Trading\n"
	_, err := ReadContexts(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty portfolio code")
}

func TestReadIdentifiers(t *testing.T) {
	data := IdentifierHeader + "\n" +
		"12307,ISIN,HK0000031069,HK0000031069,Some Listed Co\n" +
		"12734,CUSIP,06738EAB1,US06738EAB11 HTM,\n"

	ids, err := ReadIdentifiers(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, ids, 2)

	assert.Equal(t, IDISIN, ids[0].Type)
	assert.Equal(t, "HK0000031069", ids[0].Value)
	assert.Equal(t, "Some Listed Co", ids[0].Name)
	assert.Equal(t, IDCUSIP, ids[1].Type)
	assert.Equal(t, "US06738EAB11 HTM", ids[1].Investment)
}

func TestReadIdentifiers_BadType(t *testing.T) {
	data := IdentifierHeader + "\n12307,WKN,123456,INV,\n"
	_, err := ReadIdentifiers(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown identifier type")
}

func TestReadIdentifiers_MissingValue(t *testing.T) {
	data := IdentifierHeader + "\n12307,ISIN,,INV,\n"
	_, err := ReadIdentifiers(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestReadIdentifiers_FieldCountMismatch(t *testing.T) {
	data := IdentifierHeader + "\n12307,ISIN,HK0000031069\n"
	_, err := ReadIdentifiers(strings.NewReader(data))
	require.Error(t, err)
}
