package pipeline

// %[1]s company, %[2]s search results.
const researchPrompt = `You are an expert AI business analyst. Analyze the following information about the company "%[1]s" and extract structured information.
Requirements:
1. Identify the **industry and market segment** (e.g., Automotive, Retail, Healthcare, etc.).
2. List **key products/services/offerings** (3-5 main items).
3. List **strategic focus areas** (operations, supply chain, customer experience, marketing, etc.).
4. List **current challenges or opportunities** mentioned.

Search Results:
%[2]s

IMPORTANT INSTRUCTIONS:
- Return your answer ONLY in strict JSON format.
- Do NOT include any explanation, extra text, or commentary.
- Follow the JSON structure exactly as shown in the example.
- Use "Unable to determine" if a value cannot be inferred.

Example JSON output:
{
    "industry": "Retail & E-commerce",
    "key_offerings": ["Sportswear", "Athletic Shoes", "Accessories"],
    "strategic_focus": ["Digital Transformation", "Supply Chain Optimization", "Customer Experience"],
    "challenges": ["Competition from direct-to-consumer brands", "Supply chain disruptions"]
}`

// %[1]s company, %[2]s industry, %[3]s offerings, %[4]s focus, %[5]s trends.
const useCasePrompt = `Based on the following company research and industry trends, generate 5-7 relevant AI/GenAI use cases for %[1]s:

COMPANY ANALYSIS:
Industry: %[2]s
Key Offerings: %[3]s
Strategic Focus: %[4]s

INDUSTRY AI TRENDS:
%[5]s

Generate use cases that consider:
1. Large Language Models (LLMs) applications
2. Generative AI solutions
3. Machine Learning automation
4. Operational efficiency improvements
5. Customer experience enhancement

For each use case, provide:
- title
- description (2-3 sentences)
- impact (potential business value)
- technologies (list, e.g. LLM, Computer Vision, NLP)

Return ONLY strict JSON with the list of use cases under the key "use_cases":
{"use_cases": [{"title": "...", "description": "...", "impact": "...", "technologies": ["..."]}]}`

// %[1]s company, %[2]s industry, %[3]s offerings, %[4]s focus,
// %[5]s use cases, %[6]s resources.
const reportPrompt = `Create a comprehensive AI consulting report for %[1]s.

COMPANY ANALYSIS:
Industry: %[2]s
Key Offerings: %[3]s
Strategic Focus Areas: %[4]s

PROPOSED AI USE CASES:
%[5]s

RESOURCES:
%[6]s

Format the report as a professional markdown document with the following sections:

# AI Consultation Report for %[1]s

## Executive Summary
Brief overview of findings and recommendations

## Company & Industry Analysis
- Industry: %[2]s
- Key Offerings
- Strategic Focus Areas

## AI Trends in %[2]s
Current industry trends and opportunities

## Proposed AI/GenAI Use Cases
Detailed description of each use case with:
- Title
- Description
- Expected Impact
- Required Technologies
- Implementation Complexity

## Implementation Resources
- Available datasets
- Learning resources
- Implementation guides

## Next Steps & Recommendations
Actionable steps for implementation

Make sure the report is professional, actionable, and includes clickable links where available.`
