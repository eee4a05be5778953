// Package fallback provides static substitute data for every dashboard view.
//
// Each value mirrors the field names and types of the corresponding live
// result so downstream consumers never branch on whether data is real or
// substituted. Accessors return fresh copies; nothing here is mutated after
// construction.
package fallback

import (
	"fmt"
	"math/rand"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
)

// WordCloud returns the static word-cloud substitute.
func WordCloud() []domain.WordCount {
	out := make([]domain.WordCount, len(wordCloud))
	copy(out, wordCloud)
	return out
}

// Trending returns the static trending-topic substitute.
func Trending() []domain.RankedTopic {
	out := make([]domain.RankedTopic, len(trending))
	copy(out, trending)
	return out
}

// Researchers returns the static researcher directory substitute.
func Researchers() []domain.Researcher {
	out := make([]domain.Researcher, len(researchers))
	copy(out, researchers)
	return out
}

// Capsules uniformly samples n capsules from the static pool without
// replacement.
func Capsules(n int, rng *rand.Rand) []domain.Capsule {
	if n > len(capsules) {
		n = len(capsules)
	}
	idx := rng.Perm(len(capsules))[:n]
	out := make([]domain.Capsule, 0, n)
	for _, i := range idx {
		out = append(out, capsules[i])
	}
	return out
}

// ChatSummary returns the substitute chat summary for a query.
func ChatSummary(query string) string {
	return fmt.Sprintf(
		"Based on your interest in %q, this field is growing rapidly with numerous breakthroughs in AI applications.",
		query,
	)
}

// ChatResearchers returns the substitute researcher suggestions for the chat
// view, in the works-extraction shape.
func ChatResearchers() []domain.ResearcherSummary {
	out := make([]domain.ResearcherSummary, len(chatResearchers))
	copy(out, chatResearchers)
	return out
}

// AdvisorReply is the substitute reply when the completion API is
// unavailable during an advisor conversation.
const AdvisorReply = "Woof! My tail got tangled for a moment. " +
	"Let me help you explore research directions in AI and machine learning!"

// ChatPlaceholder is the persona-consistent substitute returned when only
// the completion call fails but bibliographic suggestions succeeded.
const ChatPlaceholder = "Whoops—my Terrier nose hit a snag fetching ideas just now. " +
	"Still, this topic is buzzing harder than a dining hall at lunchtime, " +
	"so take a look at the researchers on the right while I reset my tail wag."

// LifePathStory is the substitute narrative when story generation fails.
const LifePathStory = "Every research journey starts with a single curious step. " +
	"While I fetch a fresh story, picture this: your background already points " +
	"toward problems worth solving, and the path from here is paved with good " +
	"questions, generous mentors, and the occasional all-nighter that turns " +
	"into a breakthrough."

var wordCloud = []domain.WordCount{
	{Text: "Large Language Models", Value: 150},
	{Text: "Multimodal Learning", Value: 130},
	{Text: "AI Safety", Value: 120},
	{Text: "Reinforcement Learning", Value: 110},
	{Text: "Computer Vision", Value: 105},
	{Text: "Natural Language Processing", Value: 100},
	{Text: "Diffusion Models", Value: 95},
	{Text: "Transformer Architecture", Value: 90},
	{Text: "Few-Shot Learning", Value: 85},
	{Text: "Neural Networks", Value: 80},
	{Text: "Deep Learning", Value: 78},
	{Text: "Generative AI", Value: 75},
	{Text: "AI Alignment", Value: 70},
	{Text: "Machine Learning", Value: 68},
	{Text: "Vision-Language Models", Value: 65},
	{Text: "Agent Systems", Value: 60},
	{Text: "Meta-Learning", Value: 58},
	{Text: "Explainable AI", Value: 55},
	{Text: "Transfer Learning", Value: 52},
	{Text: "Graph Neural Networks", Value: 50},
	{Text: "Attention Mechanisms", Value: 48},
	{Text: "Self-Supervised Learning", Value: 45},
	{Text: "Federated Learning", Value: 42},
	{Text: "Neural Architecture Search", Value: 40},
	{Text: "Robotics", Value: 38},
}

var trending = []domain.RankedTopic{
	{Name: "Large Language Models", Count: 150},
	{Name: "Multimodal Learning", Count: 130},
	{Name: "AI Safety", Count: 120},
	{Name: "Reinforcement Learning", Count: 110},
	{Name: "Computer Vision", Count: 105},
	{Name: "Diffusion Models", Count: 95},
	{Name: "Natural Language Processing", Count: 90},
	{Name: "Few-Shot Learning", Count: 85},
	{Name: "Neural Networks", Count: 80},
	{Name: "Deep Learning", Count: 78},
	{Name: "Generative AI", Count: 75},
	{Name: "Vision-Language Models", Count: 65},
	{Name: "Agent Systems", Count: 60},
	{Name: "Meta-Learning", Count: 58},
	{Name: "Explainable AI", Count: 55},
}

var researchers = []domain.Researcher{
	{
		Name:        "Dr. Alice Zhang",
		Affiliation: "MIT CSAIL",
		Country:     "US",
		Link:        "https://scholar.google.com/citations?user=alice_zhang",
		Topics:      []string{"Large Language Models", "Natural Language Processing", "AI Safety"},
		Citations:   15420,
		WorksCount:  87,
	},
	{
		Name:        "Prof. Mark Liu",
		Affiliation: "Stanford AI Lab",
		Country:     "US",
		Link:        "https://arxiv.org/a/liu_m_1.html",
		Topics:      []string{"Multimodal Learning", "Vision-Language Models", "Computer Vision"},
		Citations:   12350,
		WorksCount:  65,
	},
	{
		Name:        "Dr. Sarah Chen",
		Affiliation: "Google DeepMind",
		Country:     "UK",
		Link:        "https://scholar.google.com/citations?user=sarah_chen",
		Topics:      []string{"Reinforcement Learning", "Agent Systems", "AI Safety"},
		Citations:   18900,
		WorksCount:  52,
	},
	{
		Name:        "Prof. James Anderson",
		Affiliation: "UC Berkeley",
		Country:     "US",
		Link:        "https://scholar.google.com/citations?user=j_anderson",
		Topics:      []string{"Deep Learning", "Neural Networks", "Transfer Learning"},
		Citations:   22100,
		WorksCount:  120,
	},
	{
		Name:        "Dr. Elena Rodriguez",
		Affiliation: "Carnegie Mellon University",
		Country:     "US",
		Link:        "https://scholar.google.com/citations?user=e_rodriguez",
		Topics:      []string{"Computer Vision", "Generative AI", "Diffusion Models"},
		Citations:   9800,
		WorksCount:  45,
	},
	{
		Name:        "Prof. Wei Li",
		Affiliation: "Tsinghua University",
		Country:     "CN",
		Link:        "https://scholar.google.com/citations?user=wei_li",
		Topics:      []string{"Natural Language Processing", "Large Language Models", "Machine Learning"},
		Citations:   14200,
		WorksCount:  92,
	},
	{
		Name:        "Dr. Michael Brown",
		Affiliation: "Oxford University",
		Country:     "UK",
		Link:        "https://scholar.google.com/citations?user=m_brown",
		Topics:      []string{"AI Safety", "AI Alignment", "Explainable AI"},
		Citations:   8500,
		WorksCount:  38,
	},
	{
		Name:        "Prof. Yuki Tanaka",
		Affiliation: "University of Tokyo",
		Country:     "JP",
		Link:        "https://scholar.google.com/citations?user=y_tanaka",
		Topics:      []string{"Robotics", "Reinforcement Learning", "Agent Systems"},
		Citations:   11300,
		WorksCount:  74,
	},
}

var chatResearchers = []domain.ResearcherSummary{
	{
		Name:        "Dr. Alice Zhang",
		Link:        "https://scholar.google.com/citations?user=example1",
		Affiliation: "MIT CSAIL",
		Field:       "AI Research",
	},
	{
		Name:        "Prof. Mark Liu",
		Link:        "https://scholar.google.com/citations?user=example2",
		Affiliation: "Stanford AI Lab",
		Field:       "AI Research",
	},
}

var capsules = []domain.Capsule{
	{
		Title:       "Attention Is All You Need",
		Year:        2017,
		Citations:   98234,
		Link:        "https://openalex.org/W2964315648",
		Rarity:      domain.RaritySSR,
		RarityLabel: "Legendary",
		Authors:     []string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar"},
		Concepts:    []string{"Transformer", "Neural Network", "Natural Language Processing"},
	},
	{
		Title:       "BERT: Pre-training of Deep Bidirectional Transformers",
		Year:        2019,
		Citations:   67543,
		Link:        "https://openalex.org/W2964315649",
		Rarity:      domain.RaritySSR,
		RarityLabel: "Legendary",
		Authors:     []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee"},
		Concepts:    []string{"BERT", "Language Model", "NLP"},
	},
	{
		Title:       "Deep Residual Learning for Image Recognition",
		Year:        2016,
		Citations:   154234,
		Link:        "https://openalex.org/W2964315650",
		Rarity:      domain.RaritySSR,
		RarityLabel: "Legendary",
		Authors:     []string{"Kaiming He", "Xiangyu Zhang", "Shaoqing Ren"},
		Concepts:    []string{"Computer Vision", "ResNet", "Deep Learning"},
	},
	{
		Title:       "Generative Adversarial Networks",
		Year:        2014,
		Citations:   45678,
		Link:        "https://openalex.org/W2964315651",
		Rarity:      domain.RaritySSR,
		RarityLabel: "Legendary",
		Authors:     []string{"Ian Goodfellow", "Jean Pouget-Abadie", "Mehdi Mirza"},
		Concepts:    []string{"GAN", "Generative Model", "Deep Learning"},
	},
	{
		Title:       "Adam: A Method for Stochastic Optimization",
		Year:        2015,
		Citations:   123456,
		Link:        "https://openalex.org/W2964315652",
		Rarity:      domain.RaritySSR,
		RarityLabel: "Legendary",
		Authors:     []string{"Diederik P. Kingma", "Jimmy Ba"},
		Concepts:    []string{"Optimization", "Machine Learning", "Gradient Descent"},
	},
	{
		Title:       "Neural Architecture Search with Reinforcement Learning",
		Year:        2017,
		Citations:   1876,
		Link:        "https://openalex.org/W2964315653",
		Rarity:      domain.RaritySR,
		RarityLabel: "Epic",
		Authors:     []string{"Barret Zoph", "Quoc V. Le"},
		Concepts:    []string{"AutoML", "Neural Architecture Search", "Reinforcement Learning"},
	},
	{
		Title:       "EfficientNet: Rethinking Model Scaling",
		Year:        2019,
		Citations:   1543,
		Link:        "https://openalex.org/W2964315654",
		Rarity:      domain.RaritySR,
		RarityLabel: "Epic",
		Authors:     []string{"Mingxing Tan", "Quoc V. Le"},
		Concepts:    []string{"Computer Vision", "Model Scaling", "Neural Networks"},
	},
	{
		Title:       "Graph Neural Networks: A Review",
		Year:        2020,
		Citations:   234,
		Link:        "https://openalex.org/W2964315655",
		Rarity:      domain.RarityR,
		RarityLabel: "Rare",
		Authors:     []string{"Jie Zhou", "Ganqu Cui", "Zhengyan Zhang"},
		Concepts:    []string{"Graph Neural Networks", "Deep Learning", "Graph Theory"},
	},
	{
		Title:       "Self-Supervised Learning in Computer Vision",
		Year:        2021,
		Citations:   287,
		Link:        "https://openalex.org/W2964315656",
		Rarity:      domain.RarityR,
		RarityLabel: "Rare",
		Authors:     []string{"Alexey Dosovitskiy", "Lucas Beyer", "Alexander Kolesnikov"},
		Concepts:    []string{"Self-Supervised Learning", "Computer Vision", "Representation Learning"},
	},
	{
		Title:       "Few-Shot Learning with Meta-Learning",
		Year:        2022,
		Citations:   45,
		Link:        "https://openalex.org/W2964315657",
		Rarity:      domain.RarityN,
		RarityLabel: "Common",
		Authors:     []string{"Chelsea Finn", "Pieter Abbeel", "Sergey Levine"},
		Concepts:    []string{"Few-Shot Learning", "Meta-Learning", "Transfer Learning"},
	},
}
