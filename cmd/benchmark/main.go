// Benchmark drives the fraudgraph status API with synthetic transaction
// batches that plant known fraud rings (payment cycles) among
// legitimate traffic, then compares the returned suspicious-account set
// against the planted ground truth to report precision, recall, and
// throughput.
//
// Usage:
//
//	go run cmd/benchmark/main.go -url http://localhost:8080 -scenarios 20
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Transaction mirrors the wire shape of domain.Transaction.
type Transaction struct {
	ID         string    `json:"transaction_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// AnalyzeRequest mirrors statusapi.AnalyzeRequest.
type AnalyzeRequest struct {
	Transactions []Transaction `json:"transactions"`
}

// AnalyzeResponse mirrors statusapi.AnalyzeResponse, trimmed to the fields
// this tool reads.
type AnalyzeResponse struct {
	RunID  string `json:"run_id"`
	Report struct {
		SuspiciousAccounts []struct {
			AccountID string `json:"account_id"`
		} `json:"suspicious_accounts"`
		Summary struct {
			ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
		} `json:"summary"`
	} `json:"report"`
}

// Scenario is one synthetic transaction batch with known ground truth.
type Scenario struct {
	ID           int
	Transactions []Transaction
	PlantedFraud map[string]bool
	LegitAccount map[string]bool
}

// Metrics tallies per-account confusion matrix results across every
// scenario processed.
type Metrics struct {
	TruePositives  int64 // planted fraud account flagged suspicious
	FalseNegatives int64 // planted fraud account missed
	FalsePositives int64 // legitimate-only account flagged suspicious
	TrueNegatives  int64 // legitimate-only account correctly not flagged

	ScenariosProcessed int64
	ScenarioErrors     int64
	TotalLatencyMs     int64
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "fraudgraph status API base URL")
	scenarioCount := flag.Int("scenarios", 20, "number of synthetic scenarios to run")
	accounts := flag.Int("accounts", 200, "legitimate accounts per scenario")
	legitTx := flag.Int("legit-tx", 600, "legitimate transactions per scenario")
	rings := flag.Int("rings", 3, "planted fraud rings per scenario")
	ringSize := flag.Int("ring-size", 5, "accounts per planted ring")
	workers := flag.Int("workers", 4, "concurrent scenario workers")
	seed := flag.Int64("seed", 1, "random seed for reproducible scenarios")
	verbose := flag.Bool("verbose", false, "print each scenario's result")
	flag.Parse()

	fmt.Println("===================================================================")
	fmt.Println(" FRAUDGRAPH BENCHMARK - synthetic planted-ring precision/recall")
	fmt.Println("===================================================================")
	fmt.Printf("\nTarget:      %s\n", *baseURL)
	fmt.Printf("Scenarios:   %d\n", *scenarioCount)
	fmt.Printf("Accounts:    %d per scenario\n", *accounts)
	fmt.Printf("Legit tx:    %d per scenario\n", *legitTx)
	fmt.Printf("Rings:       %d of size %d per scenario\n", *rings, *ringSize)
	fmt.Printf("Workers:     %d\n", *workers)
	fmt.Println()

	if err := checkHealth(*baseURL); err != nil {
		fmt.Printf("ERROR: fraudgraph status API not reachable at %s: %v\n", *baseURL, err)
		fmt.Println("\nMake sure the server is running:")
		fmt.Println("  go run cmd/fraudgraph/main.go serve")
		os.Exit(1)
	}
	fmt.Println("fraudgraph status API is healthy")

	rng := rand.New(rand.NewSource(*seed))
	scenarios := make([]Scenario, *scenarioCount)
	for i := range scenarios {
		scenarios[i] = generateScenario(rng, i, *accounts, *legitTx, *rings, *ringSize)
	}

	fmt.Printf("\nRunning %d scenarios with %d workers...\n", len(scenarios), *workers)
	start := time.Now()
	metrics := runBenchmark(scenarios, *baseURL, *workers, *verbose)
	duration := time.Since(start)

	printResults(metrics, duration)
}

func checkHealth(baseURL string) error {
	resp, err := http.Get(baseURL + "/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// generateScenario builds a transaction batch: a background of random
// legitimate transfers among a fresh account pool, plus ringCount planted
// fraud rings stitched in as simple payment cycles (A->B->C->...->A).
func generateScenario(rng *rand.Rand, id, accountCount, legitTxCount, ringCount, ringSize int) Scenario {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	accountIDs := make([]string, accountCount)
	legit := make(map[string]bool, accountCount)
	for i := range accountIDs {
		name := fmt.Sprintf("s%d-acct-%d", id, i)
		accountIDs[i] = name
		legit[name] = true
	}

	var txs []Transaction
	for i := 0; i < legitTxCount; i++ {
		from := accountIDs[rng.Intn(len(accountIDs))]
		to := accountIDs[rng.Intn(len(accountIDs))]
		if from == to {
			continue
		}
		txs = append(txs, Transaction{
			ID:         fmt.Sprintf("s%d-legit-%d", id, i),
			SenderID:   from,
			ReceiverID: to,
			Amount:     50 + rng.Float64()*500,
			Timestamp:  base.Add(time.Duration(rng.Intn(30*24)) * time.Hour),
		})
	}

	planted := make(map[string]bool)
	for r := 0; r < ringCount; r++ {
		members := make([]string, ringSize)
		for i := range members {
			name := fmt.Sprintf("s%d-ring%d-%d", id, r, i)
			members[i] = name
			planted[name] = true
			delete(legit, name) // planted accounts are never "legitimate-only"
		}
		ringStart := base.Add(time.Duration(r) * 48 * time.Hour)
		for i, member := range members {
			next := members[(i+1)%len(members)]
			txs = append(txs, Transaction{
				ID:         fmt.Sprintf("s%d-ring%d-tx%d", id, r, i),
				SenderID:   member,
				ReceiverID: next,
				Amount:     9500 + rng.Float64()*400,
				Timestamp:  ringStart.Add(time.Duration(i) * 15 * time.Minute),
			})
		}
	}

	return Scenario{ID: id, Transactions: txs, PlantedFraud: planted, LegitAccount: legit}
}

func runBenchmark(scenarios []Scenario, baseURL string, numWorkers int, verbose bool) *Metrics {
	metrics := &Metrics{}
	work := make(chan Scenario, len(scenarios))
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := &http.Client{Timeout: 2 * time.Minute}

			for sc := range work {
				start := time.Now()
				resp, err := submitScenario(client, baseURL, sc)
				elapsed := time.Since(start).Milliseconds()

				atomic.AddInt64(&metrics.TotalLatencyMs, elapsed)
				atomic.AddInt64(&metrics.ScenariosProcessed, 1)

				if err != nil {
					atomic.AddInt64(&metrics.ScenarioErrors, 1)
					if verbose {
						fmt.Printf("scenario %d: ERROR %v\n", sc.ID, err)
					}
					continue
				}

				flagged := make(map[string]bool, len(resp.Report.SuspiciousAccounts))
				for _, a := range resp.Report.SuspiciousAccounts {
					flagged[a.AccountID] = true
				}

				var tp, fn int64
				for acct := range sc.PlantedFraud {
					if flagged[acct] {
						tp++
					} else {
						fn++
					}
				}
				var fp, tn int64
				for acct := range sc.LegitAccount {
					if flagged[acct] {
						fp++
					} else {
						tn++
					}
				}
				atomic.AddInt64(&metrics.TruePositives, tp)
				atomic.AddInt64(&metrics.FalseNegatives, fn)
				atomic.AddInt64(&metrics.FalsePositives, fp)
				atomic.AddInt64(&metrics.TrueNegatives, tn)

				if verbose {
					fmt.Printf("scenario %d: planted=%d flagged=%d tp=%d fn=%d fp=%d (%.2fs engine time)\n",
						sc.ID, len(sc.PlantedFraud), len(flagged), tp, fn, fp, resp.Report.Summary.ProcessingTimeSeconds)
				}
			}
		}()
	}

	for _, sc := range scenarios {
		work <- sc
	}
	close(work)
	wg.Wait()

	return metrics
}

func submitScenario(client *http.Client, baseURL string, sc Scenario) (*AnalyzeResponse, error) {
	body, err := json.Marshal(AnalyzeRequest{Transactions: sc.Transactions})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var out AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func printResults(m *Metrics, duration time.Duration) {
	fmt.Println("\n===================================================================")
	fmt.Println(" BENCHMARK RESULTS")
	fmt.Println("===================================================================")

	fmt.Printf("\nScenarios processed: %d (%d errors)\n", m.ScenariosProcessed, m.ScenarioErrors)

	fmt.Printf("\nCONFUSION MATRIX (per account)\n")
	fmt.Println("                    Flagged        Not flagged")
	fmt.Printf("  Planted fraud   %8d        %8d   (TP, FN)\n", m.TruePositives, m.FalseNegatives)
	fmt.Printf("  Legitimate-only %8d        %8d   (FP, TN)\n", m.FalsePositives, m.TrueNegatives)

	precision := safeDiv(float64(m.TruePositives), float64(m.TruePositives+m.FalsePositives))
	recall := safeDiv(float64(m.TruePositives), float64(m.TruePositives+m.FalseNegatives))
	f1 := safeDiv(2*precision*recall, precision+recall)

	fmt.Printf("\nDETECTION METRICS\n")
	fmt.Printf("   Precision:  %.4f\n", precision)
	fmt.Printf("   Recall:     %.4f\n", recall)
	fmt.Printf("   F1-Score:   %.4f\n", f1)

	fmt.Printf("\nPERFORMANCE\n")
	fmt.Printf("   Total Duration:   %v\n", duration.Round(time.Millisecond))
	if m.ScenariosProcessed > 0 {
		avgMs := float64(m.TotalLatencyMs) / float64(m.ScenariosProcessed)
		fmt.Printf("   Avg Latency:      %.2f ms/scenario\n", avgMs)
	}
	fmt.Println()
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
