package scoring

// Scoring Constants - All thresholds and weights for player score calculations

// =============================================================================
// Score Scales
// =============================================================================

const (
	// Composite scores live on a 0-10 scale
	CompositeScoreMax = 10.0

	// The master impact score allows headroom for interaction bonuses
	MasterScoreMax = 15.0
)

// =============================================================================
// Master Score (Player Impact)
// =============================================================================

const (
	// Interaction bonus thresholds and values. A bonus fires when BOTH
	// named composites clear the threshold.
	QualityFormThreshold  = 7.0 // Quality and form both elite
	QualityFormBonus      = 0.5
	FormFixtureThreshold  = 6.5 // In form with a favourable run
	FormFixtureBonus      = 0.3
	QualityValueThreshold = 6.0 // Quality at a fair price
	QualityValueBonus     = 0.2
	TeamFormThreshold     = 6.0 // Player form backed by team momentum
	TeamFormBonus         = 0.2

	// Risk penalty thresholds and values
	InjuryRiskThreshold    = 0.3
	InjuryRiskPenalty      = -0.5
	RotationRiskThreshold  = 0.4
	RotationRiskPenalty    = -0.3
	OwnershipRiskThreshold = 0.1 // Near-zero ownership is a warning sign
	OwnershipRiskPenalty   = -0.2
	PriceRiskThreshold     = 12.0 // Premium assets carry opportunity cost
	PriceRiskPenalty       = -0.2

	// Confidence multiplier component weights (sum to 1.0)
	ConfidenceWeightDataQuality = 0.4
	ConfidenceWeightSampleSize  = 0.3
	ConfidenceWeightConsistency = 0.3

	// Confidence multiplier bounds: 50% to 150%
	ConfidenceFloor   = 0.5
	ConfidenceCeiling = 1.5
)

// =============================================================================
// Quality Score
// =============================================================================

const (
	// Bayesian shrinkage towards the positional prior
	SampleSizeThreshold = 5

	// Buildup enhancement caps and scales
	BuildupCreativityCap   = 2.0
	BuildupCreativityScale = 50.0
	BuildupInfluenceCap    = 1.5
	BuildupInfluenceScale  = 100.0
	BuildupAssistsCap      = 1.0
	BuildupAssistsScale    = 5.0
	BuildupBoostDivisor    = 20.0 // Up to 22.5% boost

	// Contextual adjustments
	StrongTeamStrength   = 70.0 // Stats inflate in dominant sides
	StrongTeamPenaltyMax = 0.1
	WeakTeamStrength     = 30.0 // Credit for carrying a weak side
	WeakTeamBonusMax     = 0.15

	// Points-per-game bands that suggest limited minutes
	VeryLowPPG        = 2.0
	LowPPG            = 3.0
	VeryLowPPGPenalty = -0.5
	LowPPGPenalty     = -0.2
	UnplayedPenalty   = -1.0
)

// =============================================================================
// Form Score
// =============================================================================

const (
	// Component weights (normalized by their sum)
	FormRecentWeight      = 0.6
	FormConsistencyWeight = 0.4
	FormTrendWeight       = 0.2

	// Recent history window and decay
	FormHistoryLength = 6
	FormDecayFactor   = 0.8

	// Weighted-average form bands
	ExcellentFormAvg = 7.0
	GoodFormAvg      = 5.0
	ModerateFormAvg  = 3.0

	// Coefficient-of-variation bands for consistency
	ConsistentCV   = 1.5
	InconsistentCV = 2.5

	// Trend slope band for a strongly improving player
	StrongTrendSlope = 0.5
)

// =============================================================================
// Team Momentum Score
// =============================================================================

const (
	// Component weights (sum to 1.0)
	MomentumResultsWeight   = 0.4
	MomentumAttackingWeight = 0.3
	MomentumDefensiveWeight = 0.2
	MomentumExpectedWeight  = 0.1

	// Recent results window and decay
	MomentumLookbackGames = 6
	MomentumDecayFactor   = 0.8

	// Points-per-game form bands
	ExcellentTeamPPG = 2.0
	GoodTeamPPG      = 1.5
	PoorTeamPPG      = 0.8

	// Expected performance blend
	ExpectedStrengthWeight = 0.6
	ExpectedPositionWeight = 0.4
)

// =============================================================================
// Fixture Score
// =============================================================================

const (
	// Component weights (sum to 1.0)
	FixtureDifficultyWeight = 0.5
	FixtureVenueWeight      = 0.2
	FixtureSchedulingWeight = 0.2
	FixtureRotationWeight   = 0.1

	// How many gameweeks ahead to evaluate
	DefaultLookaheadGameweeks = 5

	// Per-fixture decay: nearer fixtures matter more
	FixtureDecayFactor = 0.9

	// Venue adjustments around the neutral 5.0
	HomeAdvantage = 0.5
	AwayPenalty   = -0.3

	// Difficulty bands on the 1-5 scale
	EasyFixtureThreshold = 2.5
	HardFixtureThreshold = 4.0

	// Scheduling adjustments
	DoubleGameweekBonus  = 2.0
	BlankGameweekPenalty = -5.0

	// Playable fixtures in the window that flag congestion rotation
	CongestionFixtureCount = 3
)

// =============================================================================
// Value Score
// =============================================================================

const (
	// Component weights (sum to 1.0)
	ValuePriceEfficiencyWeight = 0.4
	ValueOwnershipWeight       = 0.3
	ValueDifferentialWeight    = 0.2
	ValueMomentumWeight        = 0.1

	// Points-per-million bands
	ExcellentPPM = 25.0
	GoodPPM      = 20.0
	PoorPPM      = 15.0

	// Ownership bands (percent selected)
	HighOwnership   = 50.0
	MediumOwnership = 20.0
	LowOwnership    = 5.0

	// Differential price bonus bands
	CheapPriceThreshold = 6.0
	MidPriceThreshold   = 8.0
	CheapPriceBonus     = 1.0
	MidPriceBonus       = 0.5

	// Net transfer momentum bands
	HighTransfersIn  = 100000
	SomeTransfersIn  = 50000
	SomeTransfersOut = -50000
	HighTransfersOut = -100000
)

// =============================================================================
// Position Scorer Constants
// =============================================================================

// Goalkeeper component weights and thresholds
const (
	GKSaveWeight         = 0.4
	GKCleanSheetWeight   = 0.3
	GKDistributionWeight = 0.2
	GKBonusWeight        = 0.1

	GKSavesPerGameGood      = 3.0
	GKSavesPerGameExcellent = 5.0
	GKCleanSheetsGood       = 5.0
	GKCleanSheetsExcellent  = 10.0

	// Goals conceded per game adjustments
	GKConcededPenaltyAbove = 2.0
	GKConcededBonusBelow   = 1.0

	// Season influence divisor for distribution quality
	GKInfluenceScale = 100.0

	// One bonus point per game is elite for a keeper
	GKBonusPerGameScale = 10.0
)

// Defender component weights and thresholds
const (
	DEFCleanSheetWeight = 0.4
	DEFAttackingWeight  = 0.3
	DEFDefensiveWeight  = 0.2
	DEFBonusWeight      = 0.1

	DEFCleanSheetsGood      = 8.0
	DEFCleanSheetsExcellent = 12.0

	DEFConcededPenaltyAbove = 1.5
	DEFConcededBonusBelow   = 0.8

	// Goals count double towards attacking returns
	DEFGoalValue           = 2.0
	DEFAttackingGood       = 6.0
	DEFAttackingExcellent  = 10.0
	DEFInfluencePerGameMax = 15.0
	DEFBonusPerGameScale   = 20.0
)

// Midfielder component weights and thresholds
const (
	MIDGoalThreatWeight = 0.3
	MIDCreativityWeight = 0.3
	MIDDefensiveWeight  = 0.2
	MIDBonusWeight      = 0.2

	MIDGoalsGood        = 5.0
	MIDGoalsExcellent   = 10.0
	MIDAssistsGood      = 6.0
	MIDAssistsExcellent = 12.0

	// Season ICT bonuses layered on top of raw returns
	MIDThreatBonusCap      = 3.0
	MIDThreatBonusScale    = 100.0
	MIDCreativityBonusCap  = 3.0
	MIDCreativityScale     = 100.0
	MIDInfluencePerGameMax = 20.0
	MIDBonusPerGameScale   = 25.0
)

// Forward component weights and thresholds
const (
	FWDFinishingWeight  = 0.4
	FWDGoalThreatWeight = 0.3
	FWDAssistWeight     = 0.2
	FWDBonusWeight      = 0.1

	FWDGoalsGood        = 12.0
	FWDGoalsExcellent   = 20.0
	FWDAssistsGood      = 5.0
	FWDAssistsExcellent = 10.0

	FWDThreatPerGameScale = 20.0
	FWDBonusPerGameScale  = 33.3
)
