package main

import (
	"context"
	"testing"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ofx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestRunImportOFX(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")
	path := writeTemp(t, "card.qfx", statementOFX)

	require.NoError(t, runImportOFX(ctx, a, []string{path}, false))
	txs := a.store.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, ofx.TransactionID("4111111111111111", "CC2024011501"), txs[0].ID)
	assert.Contains(t, out.String(), "Imported 2 new transactions")

	out.Reset()
	require.NoError(t, runImportOFX(ctx, a, []string{path}, false))
	assert.Len(t, a.store.Transactions(), 2, "re-import adds nothing")
	assert.Contains(t, out.String(), "Imported 0 new transactions")
}

func TestRunImportOFX_DryRun(t *testing.T) {
	a, out := newTestApp(t, "")
	path := writeTemp(t, "card.qfx", statementOFX)

	require.NoError(t, runImportOFX(context.Background(), a, []string{path}, true))
	assert.Empty(t, a.store.Transactions())
	assert.Contains(t, out.String(), "Dry run: 2 transactions parsed")
}

func TestRunImportOFX_NoFiles(t *testing.T) {
	a, _ := newTestApp(t, "")
	err := runImportOFX(context.Background(), a, []string{t.TempDir() + "/*.ofx"}, false)
	assert.ErrorIs(t, err, common.ErrNothingToImport)
}

func TestRunImportOFX_NothingParsed(t *testing.T) {
	a, out := newTestApp(t, "")
	bad := writeTemp(t, "broken.qfx", "not an ofx file")

	err := runImportOFX(context.Background(), a, []string{bad}, false)
	require.ErrorIs(t, err, common.ErrNothingToImport)
	assert.Equal(t, "No transactions found in any file", common.UserMessage(err))
	assert.Contains(t, out.String(), "Skipped broken.qfx")
	assert.Empty(t, a.store.Transactions())
}

func TestRunImportOFX_UnreadableFileSkipped(t *testing.T) {
	a, out := newTestApp(t, "")
	good := writeTemp(t, "card.qfx", statementOFX)
	bad := writeTemp(t, "broken.qfx", "not an ofx file")

	require.NoError(t, runImportOFX(context.Background(), a, []string{bad, good}, false))
	assert.Len(t, a.store.Transactions(), 2)
	assert.Contains(t, out.String(), "Skipped broken.qfx")
}
