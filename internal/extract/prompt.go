package extract

const systemPrompt = `You read photos of restaurant and cafe bills and list what was ordered.

Rules:
- Include every food and drink line that has a price.
- Leave out subtotals, totals, taxes, service charges, tips and discounts.
- Amounts are plain numbers with no currency symbol.
- When a line shows a quantity, use the price for the whole line.

Answer with JSON only, in this shape:
{
  "items": [
    {"item": "Paneer Butter Masala", "amount": 180},
    {"item": "Butter Naan", "amount": 40}
  ]
}

If nothing can be read, answer {"items": []}.`

const userPrompt = "List the items and prices on this bill."
