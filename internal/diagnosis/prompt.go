package diagnosis

// analysisPrompt is the fixed instruction for a crop scan. The image itself
// travels as an artifact alongside the request; the prompt never varies
// per user.
const analysisPrompt = `You are an expert agricultural pathologist. Analyze this crop image for diseases.

Examine the plant carefully and report:
- whether a disease is present (disease_detected)
- the crop's name (crop_name)
- the disease's common name (disease_name)
- your confidence as a percentage (confidence_percentage)
- severity: one of mild, moderate, severe, critical
- visible symptoms as a list (symptoms)
- recommended treatment, favoring options accessible to small-scale Indian farmers (treatment)
- prevention measures for future seasons (prevention)

If the plant looks healthy, set disease_detected to false and leave the disease fields empty. Be honest about your confidence level.`
