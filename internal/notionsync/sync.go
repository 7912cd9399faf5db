package notionsync

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/logger"
)

const (
	// BatchSize defines the number of transactions to process in a single batch
	BatchSize = 100
)

// SyncResult counts what a sync did (or would do, in a dry run).
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// SyncTransactions mirrors ledger transactions dated within period into a
// Notion database. Pages are matched on their Transaction ID property, so
// repeated runs update in place. Pages whose transaction no longer exists in
// the ledger (or that carry no id) are archived, whatever the period.
// Individual page failures are logged and counted, not fatal.
func SyncTransactions(ctx context.Context, source TransactionSource, notionClient NotionService, notionDBID string, period domain.DateRange, dryRun bool) (SyncResult, error) {
	log := logger.FromContext(ctx)
	var result SyncResult

	log.Info().
		Str("period", period.String()).
		Bool("dry_run", dryRun).
		Msg("Starting transaction sync to Notion")

	all, err := source.ListTransactions(ctx, domain.DateRange{})
	if err != nil {
		return result, fmt.Errorf("failed to list transactions: %w", err)
	}

	validTransactionIDs := make(map[string]bool, len(all))
	var transactions []domain.Transaction
	for _, tx := range all {
		validTransactionIDs[tx.ID] = true
		if period.Contains(tx.Date) {
			transactions = append(transactions, tx)
		}
	}

	log.Info().
		Int("ledger_count", len(all)).
		Int("period_count", len(transactions)).
		Msg("Retrieved transactions from ledger")

	notionPages, err := queryAllNotionPages(ctx, notionClient, notionDBID)
	if err != nil {
		return result, fmt.Errorf("failed to query Notion pages: %w", err)
	}

	log.Info().Int("notion_page_count", len(notionPages)).Msg("Retrieved existing Notion pages")

	// Map transaction ID to page ID; stale pages are archived.
	pageByTransactionID := make(map[string]string, len(notionPages))
	for _, page := range notionPages {
		txID := extractTransactionID(page)
		if txID != "" && validTransactionIDs[txID] {
			if _, dup := pageByTransactionID[txID]; !dup {
				pageByTransactionID[txID] = string(page.ID)
				continue
			}
		}

		if dryRun {
			log.Info().
				Str("transaction_id", txID).
				Str("page_id", string(page.ID)).
				Msg("[DRY RUN] Would delete stale Notion page")
			result.Deleted++
			continue
		}
		if err := notionClient.DeletePage(ctx, string(page.ID)); err != nil {
			log.Warn().
				Err(err).
				Str("transaction_id", txID).
				Str("page_id", string(page.ID)).
				Msg("Failed to delete stale Notion page")
			result.Failed++
			continue
		}
		log.Info().
			Str("transaction_id", txID).
			Str("page_id", string(page.ID)).
			Msg("Deleted stale Notion page")
		result.Deleted++
	}

	for i := 0; i < len(transactions); i += BatchSize {
		end := i + BatchSize
		if end > len(transactions) {
			end = len(transactions)
		}

		batch := transactions[i:end]
		log.Debug().
			Int("batch_start", i).
			Int("batch_end", end).
			Msg("Processing batch")

		for _, tx := range batch {
			pageID, exists := pageByTransactionID[tx.ID]

			if dryRun {
				if exists {
					log.Info().Str("transaction_id", tx.ID).Str("page_id", pageID).Msg("[DRY RUN] Would update Notion page")
					result.Updated++
				} else {
					log.Info().Str("transaction_id", tx.ID).Msg("[DRY RUN] Would create Notion page")
					result.Created++
				}
				continue
			}

			props := TransactionToNotionProperties(tx)

			if exists {
				if _, err := notionClient.UpdatePage(ctx, pageID, props); err != nil {
					log.Warn().
						Err(err).
						Str("transaction_id", tx.ID).
						Str("page_id", pageID).
						Msg("Failed to update Notion page")
					result.Failed++
					continue
				}
				result.Updated++
				continue
			}

			page, err := notionClient.CreatePage(ctx, notionDBID, props)
			if err != nil {
				log.Warn().
					Err(err).
					Str("transaction_id", tx.ID).
					Msg("Failed to create Notion page")
				result.Failed++
				continue
			}
			log.Debug().
				Str("transaction_id", tx.ID).
				Str("page_id", string(page.ID)).
				Msg("Created Notion page")
			result.Created++
		}
	}

	log.Info().
		Int("deleted", result.Deleted).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Msg("Transaction sync completed")

	return result, nil
}

// queryAllNotionPages queries all pages from a Notion database and returns them.
// Handles pagination automatically.
func queryAllNotionPages(ctx context.Context, notionClient NotionService, databaseID string) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notionClient.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllNotionPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}

// extractTransactionID extracts the transaction ID from a Notion page's properties.
// Returns empty string if not found.
func extractTransactionID(page notionapi.Page) string {
	prop, ok := page.Properties[propTransactionID]
	if !ok {
		return ""
	}
	switch p := prop.(type) {
	case *notionapi.RichTextProperty:
		if len(p.RichText) > 0 {
			return p.RichText[0].PlainText
		}
	case notionapi.RichTextProperty:
		if len(p.RichText) > 0 {
			return p.RichText[0].PlainText
		}
	}
	return ""
}
