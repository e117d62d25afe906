package detectors

import (
	"math"
	"sort"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const (
	smurfingSimilarity  = 0.15
	smurfingMinCluster  = 10
	smurfingMinReceiver = 8
	smurfingMinClusters = 2
	smurfingCap         = 5
)

type amountCluster struct {
	sum       float64
	count     int
	receivers map[string]struct{}
}

// DetectSmurfingClusters greedily clusters an account's outgoing
// transactions, sorted by amount, into groups whose members stay within
// 15% of the group's running mean. Clusters of at least 10 transactions
// reaching at least 8 distinct receivers qualify; the account fires when
// 2 or more qualify, capped at 5 (spec §4.3.22).
func DetectSmurfingClusters(g *graph.Graph) map[string]domain.SmurfingClusterSignal {
	out := make(map[string]domain.SmurfingClusterSignal)

	for _, acct := range g.AllAccounts() {
		txs := append([]domain.Transaction{}, g.Outgoing(acct)...)
		if len(txs) < smurfingMinCluster {
			continue
		}
		sort.Slice(txs, func(i, j int) bool { return txs[i].Amount < txs[j].Amount })

		var clusters []*amountCluster
		cur := &amountCluster{receivers: make(map[string]struct{})}
		for _, t := range txs {
			if cur.count > 0 {
				mean := cur.sum / float64(cur.count)
				if mean > 0 && math.Abs(t.Amount-mean) > smurfingSimilarity*mean {
					clusters = append(clusters, cur)
					cur = &amountCluster{receivers: make(map[string]struct{})}
				}
			}
			cur.sum += t.Amount
			cur.count++
			cur.receivers[t.ReceiverID] = struct{}{}
		}
		clusters = append(clusters, cur)

		qualifying := 0
		for _, c := range clusters {
			if c.count >= smurfingMinCluster && len(c.receivers) >= smurfingMinReceiver {
				qualifying++
			}
		}
		if qualifying > smurfingCap {
			qualifying = smurfingCap
		}

		if qualifying >= smurfingMinClusters {
			out[acct] = domain.SmurfingClusterSignal{ClusterCount: qualifying}
		}
	}
	return out
}
