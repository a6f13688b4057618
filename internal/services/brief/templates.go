package brief

import "fmt"

// BrandName is interpolated into both brief titles.
const BrandName = "Rozashi"

const dailyTemplate = `
%s

<b>Grisha — %s Daily Brief</b>

#1 Priority:
Finish the Shopify store conversion basics (homepage + product page + trust).

3 Tasks (1–2h total):
• Improve homepage clarity + CTA + luxury feel
• Fix product page (size guide, delivery, returns)
• Add trust signals (FAQ, shipping, contact)

Marketing Action:
Create 1 AI influencer post (clean, minimal, luxury look).

Discipline:
No perfection today. Ship progress. 1 hour minimum.

Strategy Insight:
Luxury brands win through consistency and restraint, not volume.

Reply with:
DONE / BLOCKED / NEED DECISION
`

const weeklyTemplate = `
%s

<b>Grisha — %s Weekly Strategy Review</b>

Score yourself honestly:
• Store readiness (0–10)
• Content posted (#)
• Consistency (#/7)
• Launch readiness (0–10)

Focus for next week:
Finish store + publish first 3–5 clean luxury posts.

Rule:
1 hour daily minimum. Consistency > intensity.

Reply with your scores and Grisha will identify your main bottleneck.
`

// Daily renders the daily brief headed by the weather line.
func Daily(weather string) string {
	return fmt.Sprintf(dailyTemplate, weather, BrandName)
}

// Weekly renders the weekly strategy review headed by the weather line.
func Weekly(weather string) string {
	return fmt.Sprintf(weeklyTemplate, weather, BrandName)
}
