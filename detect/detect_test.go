package detect

import (
	"errors"
	"fmt"
	"testing"
)

func tripleKey(front, victim, back string) string {
	return fmt.Sprintf("%s|%s|%s", front, victim, back)
}

func TestDetectByHeuristics_SampleBatch(t *testing.T) {
	d := New(DefaultPolicy(), nil)
	res := d.DetectByHeuristics(sampleBatch())

	if len(res.Attacks) != 6 {
		t.Fatalf("got %d attacks, want 6", len(res.Attacks))
	}

	found := make(map[string]bool, len(res.Attacks))
	for _, a := range res.Attacks {
		found[tripleKey(a.FrontRun.TxHash, a.Victim.TxHash, a.BackRun.TxHash)] = true
	}
	want := []string{
		// USDC/SHIB block: two victims, split exit over two venues.
		tripleKey("0xfront1", "0xtx_victim1", "0xback1"),
		tripleKey("0xfront1", "0xtx_victim1", "0xback2"),
		tripleKey("0xfront1", "0xtx_victim2", "0xback1"),
		tripleKey("0xfront1", "0xtx_victim2", "0xback2"),
		// ETH/NEWTOKEN block: the second victim swaps wrapped ether.
		tripleKey("0xfront_eth", "0xtx_innocent", "0xback_eth"),
		tripleKey("0xfront_eth", "0xtx_ethholder", "0xback_eth"),
	}
	for _, k := range want {
		if !found[k] {
			t.Fatalf("missing expected attack %s; got %v", k, found)
		}
	}

	// The four one-transaction blocks are the only skips; the unrelated
	// 3-transaction block simply matches nothing.
	if len(res.Skips) != 4 {
		t.Fatalf("got %d skips, want 4: %+v", len(res.Skips), res.Skips)
	}
	for _, s := range res.Skips {
		if !errors.Is(s.Err, ErrInsufficientTransactions) {
			t.Fatalf("skip %+v, want ErrInsufficientTransactions", s)
		}
		if s.Block < 12363 || s.Block > 12366 {
			t.Fatalf("skip names block %d, want one of 12363-12366", s.Block)
		}
	}

	for _, a := range res.Attacks {
		if a.FrontRun.FromAddress != a.BackRun.FromAddress {
			t.Fatalf("attack legs by different addresses: %s vs %s", a.FrontRun.FromAddress, a.BackRun.FromAddress)
		}
		if a.Victim.FromAddress == a.FrontRun.FromAddress {
			t.Fatalf("attacker reported as its own victim: %s", a.Victim.TxHash)
		}
		if a.Confidence < d.policy.Weights.Base || a.Confidence > 1.0 {
			t.Fatalf("confidence %v outside [base, 1.0]", a.Confidence)
		}
	}
}

func TestDetectByHeuristics_SampleBatchScoring(t *testing.T) {
	d := New(DefaultPolicy(), nil)
	res := d.DetectByHeuristics(sampleBatch())

	for _, a := range res.Attacks {
		if a.FrontRun.TxHash != "0xfront_eth" || a.Victim.TxHash != "0xtx_innocent" {
			continue
		}
		// This triple fires every signal: gas ordering, contract callers,
		// a profitable round trip and bot-like sizing.
		if !a.Flags.Profitable || !a.Flags.Proportional {
			t.Fatalf("flags = %+v, want Profitable and Proportional", a.Flags)
		}
		if !a.Flags.FrontGasHigher || !a.Flags.BackGasLower {
			t.Fatalf("flags = %+v, want both gas signals", a.Flags)
		}
		if a.Confidence != 1.0 {
			t.Fatalf("confidence = %v, want clamp at 1.0", a.Confidence)
		}
		return
	}
	t.Fatalf("ETH sandwich on 0xtx_innocent not found")
}

func TestDetectByHeuristics_StrictPolicy(t *testing.T) {
	d := New(StrictPolicy(), nil)
	res := d.DetectByHeuristics(sampleBatch())

	// Literal token comparison drops the USDT and WETH victims; the strict
	// pool rule drops the cross-venue exit.
	if len(res.Attacks) != 2 {
		t.Fatalf("got %d attacks, want 2", len(res.Attacks))
	}
	found := make(map[string]bool, len(res.Attacks))
	for _, a := range res.Attacks {
		found[tripleKey(a.FrontRun.TxHash, a.Victim.TxHash, a.BackRun.TxHash)] = true
	}
	for _, k := range []string{
		tripleKey("0xfront1", "0xtx_victim1", "0xback1"),
		tripleKey("0xfront_eth", "0xtx_innocent", "0xback_eth"),
	} {
		if !found[k] {
			t.Fatalf("missing expected strict attack %s", k)
		}
	}
}

func TestDetectBySimulation_SampleBatch(t *testing.T) {
	d := New(DefaultPolicy(), nil)
	res := d.DetectBySimulation(samplePools(), sampleBatch())

	// Every heuristic candidate replays cleanly: the corpus's recorded
	// outputs are exactly the pool trajectory.
	if len(res.Attacks) != 6 {
		t.Fatalf("got %d attacks, want 6; skips: %+v", len(res.Attacks), res.Skips)
	}
	for _, a := range res.Attacks {
		if a.VictimLossPct <= 0 {
			t.Fatalf("attack on %s: VictimLossPct = %v, want positive", a.Victim.TxHash, a.VictimLossPct)
		}
		if a.VictimLossPct >= 10 {
			t.Fatalf("attack on %s: VictimLossPct = %v, beyond the sane ceiling", a.Victim.TxHash, a.VictimLossPct)
		}
	}

	for _, s := range res.Skips {
		if !errors.Is(s.Err, ErrInsufficientTransactions) {
			t.Fatalf("unexpected skip kind: %+v", s)
		}
	}
	if len(res.Skips) != 4 {
		t.Fatalf("got %d skips, want 4", len(res.Skips))
	}
}
