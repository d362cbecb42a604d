package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/lexproof/evidence-notary-backend/client"
	"github.com/lexproof/evidence-notary-backend/interfaces"
)

var flagServerAddr *cli.StringFlag = &cli.StringFlag{
	Name:  "server-addr",
	Value: "http://127.0.0.1:8080",
	Usage: "Notarization server address to request",
}
var flagCaller *cli.StringFlag = &cli.StringFlag{
	Name:  "caller",
	Usage: "Hex address requests act as",
}
var flagCaseID *cli.Uint64Flag = &cli.Uint64Flag{
	Name:  "case-id",
	Usage: "Numeric case identifier",
}
var flagHash *cli.StringFlag = &cli.StringFlag{
	Name:  "hash",
	Usage: "Hex-encoded 32-byte document hash",
}
var flagStoragePointer *cli.StringFlag = &cli.StringFlag{
	Name:  "storage-pointer",
	Usage: "URI locating the document bytes",
}
var flagEvidenceFile *cli.StringFlag = &cli.StringFlag{
	Name:  "evidence-file",
	Usage: "Path to a file to upload and notarize instead of a pre-computed hash",
}
var flagPaidWei *cli.StringFlag = &cli.StringFlag{
	Name:  "paid-wei",
	Value: "1000000000000000",
	Usage: "Fee payment in wei",
}
var flagPartyA *cli.StringFlag = &cli.StringFlag{
	Name:  "party-a",
	Usage: "Hex address of the first party",
}
var flagPartyB *cli.StringFlag = &cli.StringFlag{
	Name:  "party-b",
	Usage: "Hex address of the second party",
}
var flagCaseName *cli.StringFlag = &cli.StringFlag{
	Name:  "case-name",
	Usage: "Human-readable case name",
}
var flagAddress *cli.StringFlag = &cli.StringFlag{
	Name:  "address",
	Usage: "Hex address argument",
}
var flagTokenID *cli.Uint64Flag = &cli.Uint64Flag{
	Name:  "token-id",
	Usage: "Credential token identifier",
}
var flagFeeWei *cli.StringFlag = &cli.StringFlag{
	Name:  "fee-wei",
	Usage: "New fee in wei",
}

func newClient(cCtx *cli.Context) (*client.Client, error) {
	caller := cCtx.String(flagCaller.Name)
	if caller != "" && !common.IsHexAddress(caller) {
		return nil, fmt.Errorf("invalid caller address: %s", caller)
	}
	return client.New(cCtx.String(flagServerAddr.Name), common.HexToAddress(caller)), nil
}

func requireAddress(cCtx *cli.Context, flag *cli.StringFlag) (common.Address, error) {
	raw := cCtx.String(flag.Name)
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid %s: %q", flag.Name, raw)
	}
	return common.HexToAddress(raw), nil
}

func parseWei(raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid wei amount: %q", raw)
	}
	return amount, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	app := &cli.App{
		Name:           "notary client",
		Usage:          "interact with the notarization service",
		DefaultCommand: "info",
		Commands: []*cli.Command{
			{
				Name:        "info",
				Description: "Show the ledger's fee, owner, registry address, and collected balance",
				Flags:       []cli.Flag{flagServerAddr},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					info, err := c.GetLedgerInfo()
					if err != nil {
						return err
					}
					return printJSON(info)
				},
			},
			{
				Name:        "open-case",
				Description: "Open a case between two parties and print the derived case ID",
				Flags:       []cli.Flag{flagServerAddr, flagPartyA, flagPartyB, flagCaseName},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					partyA, err := requireAddress(cCtx, flagPartyA)
					if err != nil {
						return err
					}
					partyB, err := requireAddress(cCtx, flagPartyB)
					if err != nil {
						return err
					}

					caseID, err := c.OpenCase(partyA, partyB, cCtx.String(flagCaseName.Name))
					if err != nil {
						return err
					}

					fmt.Println(caseID)
					return nil
				},
			},
			{
				Name:        "store",
				Description: "Notarize a document, either by hash and pointer or by uploading a file",
				Flags:       []cli.Flag{flagServerAddr, flagCaller, flagCaseID, flagHash, flagStoragePointer, flagEvidenceFile, flagPaidWei},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					paid, err := parseWei(cCtx.String(flagPaidWei.Name))
					if err != nil {
						return err
					}
					caseID := interfaces.CaseID(cCtx.Uint64(flagCaseID.Name))

					var stored client.StoredDocument
					if evidencePath := cCtx.String(flagEvidenceFile.Name); evidencePath != "" {
						data, err := os.ReadFile(evidencePath)
						if err != nil {
							return fmt.Errorf("failed to read evidence file: %w", err)
						}
						stored, err = c.StoreEvidence(data, caseID, paid)
						if err != nil {
							return err
						}
					} else {
						hash, err := interfaces.NewDocumentHashFromHex(cCtx.String(flagHash.Name))
						if err != nil {
							return err
						}
						stored, err = c.StoreDocument(hash, caseID, cCtx.String(flagStoragePointer.Name), paid)
						if err != nil {
							return err
						}
					}

					return printJSON(stored)
				},
			},
			{
				Name:        "get",
				Description: "Fetch the record for a (case, hash) pair",
				Flags:       []cli.Flag{flagServerAddr, flagCaseID, flagHash},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					hash, err := interfaces.NewDocumentHashFromHex(cCtx.String(flagHash.Name))
					if err != nil {
						return err
					}

					doc, err := c.GetDocument(hash, interfaces.CaseID(cCtx.Uint64(flagCaseID.Name)))
					if err != nil {
						return err
					}
					return printJSON(doc)
				},
			},
			{
				Name:        "list-user",
				Description: "List every document hash filed by an address",
				Flags:       []cli.Flag{flagServerAddr, flagAddress},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					addr, err := requireAddress(cCtx, flagAddress)
					if err != nil {
						return err
					}

					hashes, err := c.DocumentsByUser(addr)
					if err != nil {
						return err
					}
					return printJSON(hashes)
				},
			},
			{
				Name:        "list-case",
				Description: "List every document hash filed under a case",
				Flags:       []cli.Flag{flagServerAddr, flagCaseID},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					hashes, err := c.DocumentsByCase(interfaces.CaseID(cCtx.Uint64(flagCaseID.Name)))
					if err != nil {
						return err
					}
					return printJSON(hashes)
				},
			},
			{
				Name:        "metadata",
				Description: "Fetch rendered metadata for a credential token",
				Flags:       []cli.Flag{flagServerAddr, flagTokenID},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					meta, err := c.CredentialMetadata(interfaces.TokenID(cCtx.Uint64(flagTokenID.Name)))
					if err != nil {
						return err
					}
					return printJSON(meta)
				},
			},
			{
				Name:        "role",
				Description: "Show the role recorded for an address",
				Flags:       []cli.Flag{flagServerAddr, flagAddress},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					addr, err := requireAddress(cCtx, flagAddress)
					if err != nil {
						return err
					}

					role, err := c.RoleOf(addr)
					if err != nil {
						return err
					}
					fmt.Println(role)
					return nil
				},
			},
			{
				Name:        "set-fee",
				Description: "Change the notarization fee (owner only)",
				Flags:       []cli.Flag{flagServerAddr, flagCaller, flagFeeWei},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					fee, err := parseWei(cCtx.String(flagFeeWei.Name))
					if err != nil {
						return err
					}
					return c.SetFee(fee)
				},
			},
			{
				Name:        "withdraw",
				Description: "Sweep the accumulated fee balance (owner only)",
				Flags:       []cli.Flag{flagServerAddr, flagCaller},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					amount, err := c.Withdraw()
					if err != nil {
						return err
					}
					fmt.Println(amount.String())
					return nil
				},
			},
			{
				Name:        "transfer-ownership",
				Description: "Hand the ledger to a new owner (owner only)",
				Flags:       []cli.Flag{flagServerAddr, flagCaller, flagAddress},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					newOwner, err := requireAddress(cCtx, flagAddress)
					if err != nil {
						return err
					}
					return c.TransferOwnership(newOwner)
				},
			},
			{
				Name:        "set-registry",
				Description: "Repoint the ledger's recorded registry address (owner only)",
				Flags:       []cli.Flag{flagServerAddr, flagCaller, flagAddress},
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx)
					if err != nil {
						return err
					}
					addr, err := requireAddress(cCtx, flagAddress)
					if err != nil {
						return err
					}
					return c.SetRegistry(addr)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
