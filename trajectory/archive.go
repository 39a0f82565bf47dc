package trajectory

// ScoreRecord is the JSON-facing shape of optimizer.Score (spec §6).
type ScoreRecord struct {
	TotalScore        float64 `json:"total_score"`
	AdjustedPurchases float64 `json:"adjusted_purchases"`
	AdjustedSteps     float64 `json:"adjusted_steps"`
}

// Archive is the §6 result shape: parallel arrays indexed by recorded
// iteration, including the trailing synthetic best-ever entry
// (it_seq == -1). Writing it to a file is left to the driver, which is
// out of scope here (spec §1).
type Archive struct {
	TrajectoryID    string        `json:"trajectory_id"`
	IterationSeq    []int         `json:"it_seq"`
	Grids           [][]int       `json:"grids"`
	Scores          []ScoreRecord `json:"scores"`
	WalkHeatmaps    [][]float64   `json:"walk_heat_maps"`
	ImpulseHeatmaps [][]float64   `json:"impulse_heat_maps"`
}

// ExportArchive flattens the trajectory's recorded iteration history into
// the §6 result shape. Call it after Run.
func (t *Trajectory) ExportArchive() Archive {
	history := t.opt.History()
	a := Archive{
		TrajectoryID:    t.id.String(),
		IterationSeq:    make([]int, len(history)),
		Grids:           make([][]int, len(history)),
		Scores:          make([]ScoreRecord, len(history)),
		WalkHeatmaps:    make([][]float64, len(history)),
		ImpulseHeatmaps: make([][]float64, len(history)),
	}
	for i, rec := range history {
		a.IterationSeq[i] = rec.IterationNum
		a.Grids[i] = rec.PlanMatrix
		a.Scores[i] = ScoreRecord{
			TotalScore:        rec.Score.TotalScore,
			AdjustedPurchases: rec.Score.AdjustedPurchases,
			AdjustedSteps:     rec.Score.AdjustedSteps,
		}
		a.WalkHeatmaps[i] = rec.WalkHeatmap.Values
		a.ImpulseHeatmaps[i] = rec.ImpulseHeatmap.Values
	}
	return a
}
