package market

// feedPrompt asks for one full snapshot of the mandi board. The crop list is
// fixed so every refresh replaces the whole board rather than patching it.
const feedPrompt = `Provide current mandi (wholesale market) prices in India for these 15 crops: Rice, Wheat, Cotton, Sugarcane, Maize, Soybean, Groundnut, Mustard, Potato, Onion, Tomato, Chilli, Turmeric, Banana, Mango.

For each crop give the price in rupees per quintal, the percentage change from last week (negative if prices fell), a major mandi where it trades (market), and that mandi's state. Include a last_updated date for the data.

Use realistic current figures for Indian agricultural markets.`
